package domain

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BootstrapMode is the branch the client takes when it boots a document.
type BootstrapMode int

const (
	// BootstrapRender means the client renders into an empty mount point.
	BootstrapRender BootstrapMode = iota
	// BootstrapHydrate means the client attaches to pre-rendered markup.
	BootstrapHydrate
)

func (b BootstrapMode) String() string {
	if b == BootstrapHydrate {
		return "hydrate"
	}

	return "render"
}

// DetectBootstrap reports which branch the client takes for document: hydrate
// when the mount node has any child nodes, render when it has none.
func DetectBootstrap(document, mountID string) (BootstrapMode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return BootstrapRender, fmt.Errorf("parse document: %w", err)
	}

	mount := doc.Find(fmt.Sprintf("[id=%q]", mountID))
	if mount.Length() == 0 {
		return BootstrapRender, fmt.Errorf("%w: #%s", ErrMountNotFound, mountID)
	}

	if mount.Get(0).FirstChild != nil {
		return BootstrapHydrate, nil
	}

	return BootstrapRender, nil
}
