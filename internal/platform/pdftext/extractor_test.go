package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/phrazzld/omnistudy/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a single-font PDF with one page per entry, computing the
// cross-reference offsets as it goes.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	objects = append(objects,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 18 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R "+
				"/Resources << /Font << /F1 3 0 R >> >> >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	e := NewExtractor(log, 1)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestExtractor_Text(t *testing.T) {
	e := newTestExtractor(t)

	text, err := e.Text(context.Background(), buildPDF(t, "Photosynthesis converts light", "Chlorophyll absorbs red"))

	require.NoError(t, err)
	assert.Contains(t, text, "Photosynthesis converts light")
	assert.Contains(t, text, "Chlorophyll absorbs red")
	assert.Less(t, bytes.Index([]byte(text), []byte("Photosynthesis")), bytes.Index([]byte(text), []byte("Chlorophyll")))
}

func TestExtractor_Errors(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.Text(context.Background(), []byte("plain text pretending to be a pdf"))
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = e.Text(context.Background(), buildPDF(t, ""))
	assert.ErrorIs(t, err, ErrNoText)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Text(ctx, buildPDF(t, "never read"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractor_Closed(t *testing.T) {
	e := NewExtractor(nil, 0)
	require.NoError(t, e.Close())

	_, err := e.Text(context.Background(), buildPDF(t, "text"))
	assert.EqualError(t, err, "extractor closed")
}
