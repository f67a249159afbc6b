// package session owns the identity of the single signed-in user.
//
// A [Store] reads the session slot once when it is opened and funnels every mutation through methods that
// re-persist the whole record. The slot key and record shape match the browser build of the app, including the
// one-time migration from the legacy "user" slot.
package session
