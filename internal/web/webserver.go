// Package web provides the HTTP server and practice page for key-vector
package web

/*
	webserver_core_routes.go  server setup, middleware, routes, lifecycle
	web_apiHandlers.go        JSON endpoints: /get_word, /get_morse, /api/v1/stats
	embedded_static.go        embedded practice page and assets
*/
