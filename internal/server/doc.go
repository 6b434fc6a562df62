// Package server provides HTTP routing, middleware and a graceful listener for the local catalog preview.
//
// # Router
//
// The [Router] interface registers handlers behind a middleware stack.
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// [BasicRouter] uses [http.ServeMux] with method-qualified patterns ("GET /snapshot"),
// so requests with the wrong method receive 405 from the mux itself.
//
// # Handler Interface
//
// Custom handlers implement [Handler], which wraps the stdlib handler interface and adds routes,
// allowing a handler to register several patterns and keep route definitions with the implementation.
//
// # Middleware
//
// [RequestLogger] tags each request with an X-Request-ID and logs method, path, status and duration.
//
// # Serving
//
// [Serve] listens until the context is canceled, then shuts down within [ShutdownTimeout].
package server
