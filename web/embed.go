package web

import "embed"

// StaticFS embeds the single-page UI (html/css/js).
//
//go:embed static/*
var StaticFS embed.FS
