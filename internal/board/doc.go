/*
Package board holds the local state behind the posts screen.

A Controller owns the Collection (every post known to the session), the
active id filter, the draft buffer used by the add and edit forms, and the
detail modal. The filtered view is never stored: Filtered derives it from
the Collection and the active filter on every call, so the two cannot
drift apart.

Detail reads are tagged with a Token. ResolveDetail applies a response
only when its token is still the latest one; closing the modal or opening
the edit form invalidates any read still in flight.

A Controller is not safe for concurrent use. The TUI touches it only from
its Update loop and performs network reads in commands that report back
with messages.
*/
package board
