package deploy

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// Browser opens a URL in the user's browser.
type Browser interface {
	Open(url string) error
}

// QRGenerator renders the QR artifacts for a deployed URL and returns the
// files written.
type QRGenerator interface {
	Generate(ctx context.Context, url string) ([]string, error)
}

// Hooks are the optional follow-ups run after a successful deploy. A nil
// field is skipped.
type Hooks struct {
	Clipboard Clipboard
	Browser   Browser
	QR        QRGenerator
}

// SystemHooks wires the desktop clipboard and browser with the given QR
// generator.
func SystemHooks(qr QRGenerator) Hooks {
	return Hooks{
		Clipboard: SystemClipboard{},
		Browser:   SystemBrowser{},
		QR:        qr,
	}
}

// SystemClipboard uses the platform clipboard tool (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// SystemBrowser uses the platform opener (open, xdg-open, rundll32).
type SystemBrowser struct{}

func (SystemBrowser) Open(url string) error {
	return browser.OpenURL(url)
}
