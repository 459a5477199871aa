// UserHub is a small application suite: a CRUD HTTP backend for users, groups
// and user-group membership with cookie based authentication, plus a pair of
// stream-processing utilities (stdin line reversal and CSV to JSON-lines
// conversion).
package main
