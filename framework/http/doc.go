// Package http provides Laravel-style request and response helpers.
//
// # Request
//
// Request wraps *http.Request with a fluent API mirroring Laravel's
// Illuminate\Http\Request.
//
//	req := gohttp.NewRequest(r)
//
//	length := req.QueryInt("length", 12)
//	hash   := req.QueryBool("hash", false)
//	chars  := req.Query("chars", "abc")
//	all    := req.All()          // map[string]string
//	ok     := req.Has("chars")
//
//	v := req.Validate(validation.Rules{"length": "integer|min:1"})
//
//	// Route params (requires Chi router)
//	kind := req.RouteParam("kind")
//
// # Response
//
// Response wraps http.ResponseWriter with helpers matching Laravel's
// response() helper and JsonResponse. Every JSON response is sent with
// Cache-Control: no-store.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.MethodNotAllowed()        // 405 {"message": "Method not allowed."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"message": "...", "errors": {"field": ["msg"]}}
package http
