/*
Package estimate derives per-participant pace and predicted-arrival
records from the activity log and course distances.

# Pace

CalculatePace walks a participant's chronologically sorted arrival and
departure entries in consecutive pairs. A pair forms a valid segment when
both entries are at different stations, both stations are on the course,
and the later station sits further along it. Segment speed is course
distance over UserTime delta. Average speed is the distance-weighted mean
over all valid segments; recent speed uses the last two.

Degraded inputs (no course, no distances configured, fewer than two
entries, no forward movement) never produce an error. They yield a record
marked estimated at the configured default speed, with a human-readable
reason the UI can show instead of failing.

# ETA

PredictETA projects the arrival at the participant's next station, or at
the virtual finish when they are at the last configured station. The
projection speed is the recent pace (or the default when estimated),
decayed by fatigueFactor per segment already covered and divided by
generosityFactor to bias toward later, safer arrival times. The
projection anchors at the participant's latest log entry at their current
station, falling back to their latest entry anywhere, then to the clock.

Pace records must be recomputed before ETA records; an ETA derived from a
stale pace is wrong by construction. Both are pure derived values and are
never treated as source of truth.
*/
package estimate
