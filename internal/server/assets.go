package server

import _ "embed"

// indexPage is the single-page dashboard
//
//go:embed index.html
var indexPage []byte
