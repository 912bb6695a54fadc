// Package userdata resolves the per-user launcher directory (~/.story-tools
// by default) and its contents: the installed-version record, the settings
// file and the apps/ directory holding one bundle per tool. It also runs the
// doctor health check over that layout.
package userdata
