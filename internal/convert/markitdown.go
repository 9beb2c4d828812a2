// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdiddy/docmark/internal/container"
	"github.com/pdiddy/docmark/pkg/types"
)

// Delegate converts office formats that have no in-process converter.
type Delegate interface {
	Convert(ctx context.Context, kind types.SourceKind, name string, data []byte) (string, error)
}

// DefaultMarkitdownImage is the image the delegate runs when none is configured.
const DefaultMarkitdownImage = "markitdown:latest"

// MarkitdownDelegate converts documents by piping them through the markitdown
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type MarkitdownDelegate struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownDelegate creates a delegate that runs image on rt. It verifies
// that the image exists locally before returning.
func NewMarkitdownDelegate(ctx context.Context, rt container.Runtime, image string) (*MarkitdownDelegate, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownDelegate{runtime: rt, image: image}, nil
}

// Convert pipes data into the container with an extension hint for kind and
// returns the Markdown it prints.
func (m *MarkitdownDelegate) Convert(ctx context.Context, kind types.SourceKind, name string, data []byte) (string, error) {
	var out bytes.Buffer
	args := []string{"-x", string(kind)}
	if err := m.runtime.Run(ctx, m.image, args, bytes.NewReader(data), &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", name, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", name)
	}
	return out.String(), nil
}
