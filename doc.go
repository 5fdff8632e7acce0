// Package fnhttp serves plain Go functions over HTTP with declarative
// parameter validation and cookie-carried sessions.
//
// A function receives a Context and returns a value or an error. Everything
// around it is handled by the request pipeline: cookies are parsed, the
// session is decoded, parameters are read from the query string or the JSON
// body, validated against a schema, and the result is shaped into JSON.
//
//	app := fnhttp.New(
//		fnhttp.WithValidator(validator.Config{
//			Params: &validator.Schema{
//				Whitelist: validator.WhitelistError,
//				Rules: validator.Rules{
//					{Key: "name", Required: true, Type: validator.TypeString},
//					{Key: "greeting", Default: "hello"},
//				},
//			},
//		}),
//		fnhttp.WithFunc(http.MethodPost, "/greet", func(c fnhttp.Context) (any, error) {
//			name, _ := fnhttp.ParamAs[string](c, "name")
//			greeting, _ := fnhttp.ParamAs[string](c, "greeting")
//			return greeting + ", " + name, nil
//		}),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//		log.Fatal(err)
//	}
//
// # Responses
//
// The result of a function becomes the response:
//
//   - a value: 200 with {"data": value}
//   - nil: 201 with no body
//   - an error: the status of StatusOf with {"error":{"message":"..."}}
//
// Validation errors are 500 with the validator message; WithErrorHandler
// can map them to another status. Context.SetStatusCode and Context.SetBody
// override the defaults; string and []byte bodies are written as is.
//
// # Cookies and sessions
//
// Context.Cookie reads the request cookies and writes the Set-Cookie header.
// Sessions are enabled by a session config in WithCookie, or by
// WithSessionCodec for server-side storage:
//
//	cfg := cookie.DefaultConfig()
//	cfg.Session = &session.Config{Key: "sid", Secret: os.Getenv("SESSION_SECRET")}
//
//	app := fnhttp.New(
//		fnhttp.WithCookie(cfg),
//		fnhttp.WithFunc(http.MethodPost, "/login", func(c fnhttp.Context) (any, error) {
//			c.Session().Set("user", "alice")
//			return nil, nil
//		}),
//	)
//
// A changed session is written back after the function returns.
//
// # Handlers
//
// Groups of functions implement [Handler]:
//
//	func (h *Users) Routes(r fnhttp.Router) {
//		r.GET("/users/{id}", h.get)
//		r.POST("/users", h.create, requireAdmin)
//	}
//
// # Shutdown
//
// Run handles SIGINT and SIGTERM and runs shutdown hooks after the server
// stopped:
//
//	err := app.Run(":8080", fnhttp.ShutdownHook(redis.Shutdown(client)))
package fnhttp
