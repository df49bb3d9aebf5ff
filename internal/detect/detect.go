// Package detect is the format auto-detection front door: given a raw
// byte buffer it decides whether the bytes are a compound-binary MPP
// file, an MS-Project XML export, or an XER export, and routes to the
// matching parser. Every failure mode surfaces as a *schederr.Error.
package detect

import (
	"bytes"

	"github.com/richardlehane/mscfb"

	"github.com/xerschedule/core/internal/builder"
	"github.com/xerschedule/core/internal/cpm"
	"github.com/xerschedule/core/internal/entity"
	"github.com/xerschedule/core/internal/mspxml"
	"github.com/xerschedule/core/internal/schederr"
	"github.com/xerschedule/core/internal/tabular"
	"github.com/xerschedule/core/internal/validation"
)

// mppMagic is the OLE Compound File Binary signature (§6).
var mppMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// sniffWindow is how many leading bytes are inspected for an XML sniff.
const sniffWindow = 100

// Parse auto-detects the format of data, routes it to the matching
// parser, runs the CPM engine over the result, and returns the
// normalized Schedule (with its computed fields populated) and an
// anomaly ledger.
func Parse(data []byte) (*entity.Schedule, *validation.Result, error) {
	schedule, result, err := parseOnly(data)
	if err != nil {
		return nil, result, err
	}
	cpm.Run(schedule)
	return schedule, result, nil
}

func parseOnly(data []byte) (*entity.Schedule, *validation.Result, error) {
	if len(data) == 0 {
		return nil, validation.NewResult(), schederr.NewEmptyFile()
	}

	if looksLikeMPP(data) {
		return parseMPP(data)
	}
	if looksLikeXML(data) {
		return parseXML(data)
	}
	return parseXER(data)
}

func looksLikeMPP(data []byte) bool {
	return len(data) >= len(mppMagic) && bytes.Equal(data[:len(mppMagic)], mppMagic)
}

func looksLikeXML(data []byte) bool {
	window := data
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	return bytes.Contains(window, []byte("<?xml")) || bytes.Contains(window, []byte("<Project"))
}

func parseXER(data []byte) (*entity.Schedule, *validation.Result, error) {
	doc, result, err := tabular.Parse(data)
	if err != nil {
		return nil, result, err
	}
	schedule, buildResult, err := builder.Build(doc)
	if result != nil && buildResult != nil {
		result.Merge(buildResult)
	}
	if err != nil {
		return nil, result, err
	}
	return schedule, result, nil
}

func parseXML(data []byte) (*entity.Schedule, *validation.Result, error) {
	schedule, result, err := mspxml.Parse(data)
	if err != nil {
		return nil, result, schederr.NewXMLParsingFailed(err)
	}
	return schedule, result, nil
}

// parseMPP scans the compound-binary container for an embedded XML
// project stream. A real CFB reader walks the container's directory;
// a hand-rolled byte scan over the whole buffer would miss streams
// whose payload is split across non-contiguous sectors.
func parseMPP(data []byte) (*entity.Schedule, *validation.Result, error) {
	result := validation.NewResult()

	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, result, schederr.NewBinaryFormatNotFullySupported()
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		buf := make([]byte, entry.Size)
		if _, readErr := doc.Read(buf); readErr != nil && readErr.Error() != "EOF" {
			continue
		}
		if xmlPayload, ok := scrapeEmbeddedXML(buf); ok {
			return parseXML(xmlPayload)
		}
	}

	return nil, result, schederr.NewBinaryFormatNotFullySupported()
}

// scrapeEmbeddedXML looks for a well-formed-looking `<?xml ... </Project>`
// substring inside a single CFB stream's bytes.
func scrapeEmbeddedXML(stream []byte) ([]byte, bool) {
	start := bytes.Index(stream, []byte("<?xml"))
	if start < 0 {
		return nil, false
	}
	endMarker := []byte("</Project>")
	endIdx := bytes.LastIndex(stream, endMarker)
	if endIdx < 0 || endIdx < start {
		return nil, false
	}
	return stream[start : endIdx+len(endMarker)], true
}
