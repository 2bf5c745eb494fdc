// Package startup handles configuration loading, directory validation, and
// the structured startup/shutdown logging for the media parser service.
package startup
