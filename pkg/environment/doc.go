// Package environment models the deployment mode of the service and carries it
// through request contexts.
//
// The mode decides what is safe to show to clients: detailed error messages are
// only exposed in Development. Anything that cannot be recognised is treated as
// Production so that misconfiguration never leaks internals.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	router.Use(environment.Middleware(env))
//
//	if environment.IsDevelopment(r.Context()) {
//		// include error detail
//	}
package environment
