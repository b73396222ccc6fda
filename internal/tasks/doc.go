// Package tasks holds the headless screen controllers shared by the TUI and the CLI.
//
// # Screens
//
// Each screen owns its client-side state and the rules for keeping it in sync with the service:
//
//  1. [AuthFlow] : login/register state machine that starts a session
//  2. [Discovery] : static catalog joined with global ratings, with quick add and mark-watched actions
//  3. [Account] : the user's list with client-side status and text filters, and mutations that always refetch
//
// # Calls
//
// Screens never block on the network. A Begin method validates input, updates screen state and returns a
// [Call]; the front end runs it off the event loop and hands the [Result] back to the matching Apply method.
// Results carry the mount id of the screen that issued them, so a result arriving after the screen was
// unmounted is ignored. A 401 from any authenticated call tears the session down through
// [session.Context.Expire] and Apply reports [RouteAuth].
//
// # Bulk Add
//
// [BulkAdder] adds many catalog entries at once with a rate limiter and a bounded errgroup. Progress is reported
// through a non-blocking [ProgressUpdate] channel.
package tasks
