// Package gateway is the API client every front-end command goes through.
//
// Client composes the request executor, the shared session context and the
// response cache. Each call is sent with the stored access token; a 401 makes
// the client refresh the token once (concurrent 401s share that one refresh)
// and replay the call once. When the refresh cannot succeed the session is
// torn down and the Navigator is sent to the login boundary, exactly once no
// matter how many calls failed together.
//
// Methods are grouped by backend namespace (Auth, Dashboard, Items,
// Categories, Operations, Warehouses, Suppliers) and all return a Result.
package gateway
