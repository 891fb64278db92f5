// Copyright 2025 Halcyon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/halcyonlabs/corpus/core"
	"github.com/ledongthuc/pdf"
)

// pdfTextStrategy extracts text page by page and concatenates the results.
// A PDF with no extractable text (scanned image-only documents) returns an
// error, which the extractor's gate reports as low_content.
type pdfTextStrategy struct{}

// NewPDFTextStrategy creates the PDF page-text extraction strategy.
func NewPDFTextStrategy() Strategy {
	return pdfTextStrategy{}
}

func (pdfTextStrategy) Name() string { return "pdftext" }

func (pdfTextStrategy) Extract(data []byte, _ core.Source) (string, string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", "", fmt.Errorf("open PDF: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages fail to parse; keep whatever the rest yields.
			continue
		}
		if text == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	if sb.Len() == 0 {
		return "", "", fmt.Errorf("no extractable text in %d pages", numPages)
	}

	return sb.String(), "", nil
}
