package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/giftring/pkg/io"
	"github.com/matzehuels/giftring/pkg/render/dot"
)

// Render encodes out in the given format.
func Render(ctx context.Context, out *Output, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatText:
		if err := io.WriteText(&buf, out.Request.Participants, out.Result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		if err := io.WriteJSON(&buf, out); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	src := dot.ToDOT(out.Request.Participants, out.Result, dot.Options{
		Forced: out.Request.Forced,
		Banned: out.Request.Banned,
	})
	switch format {
	case FormatSVG:
		return dot.RenderSVG(ctx, src)
	case FormatPNG:
		return dot.RenderPNG(ctx, src)
	default:
		return []byte(src), nil
	}
}
