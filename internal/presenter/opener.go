package presenter

import "github.com/skratchdot/open-golang/open"

// startURL hands a URL to the desktop opener without waiting for it to exit.
// xdg-open can stay in the foreground for the lifetime of a browser it started.
var startURL = open.Start

// SystemOpener hands URLs to the operating system's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	return startURL(url)
}

// OpenerFunc adapts a function to URLOpener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}
