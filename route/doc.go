/*
Package route provides the static course model: aid stations, per-course
ordered segments with cumulative distances, and a read-only index over them.

The index answers the three questions the rest of the tracker needs:

  - where does a station sit in a course (segment index, -1 if absent)
  - how far along the course is a station (cumulative distance)
  - how much unmodeled distance remains past the last configured station
    (the "virtual finish" stretch)

No validation is performed here. Malformed course data, such as
non-monotonic cumulative distances, is accepted as given; callers must
tolerate it and degrade to estimated values instead of failing.
*/
package route
