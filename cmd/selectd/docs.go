package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           selectd API
// @version         1.0
// @description     HTTP API for prompt-aware model recommendation over a hosted catalog.
//
// @contact.name   selectd maintainers
// @contact.url    https://github.com/your-org/selectd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
