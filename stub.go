package docconv

import "context"

// DOCXBanner prefixes every docx output. The docx target is a stub: the
// output is plain text labelled with the DOCX media type, not a Word file.
const DOCXBanner = "This DOCX file was generated by docconv as a plain-text stand-in; " +
	"no document structure was converted.\n\n"

// docxStub relabels the extracted text as DOCX behind DOCXBanner.
func docxStub(d *Dispatcher, _ context.Context, src source, target Format) ([]byte, error) {
	text, err := d.textOf(src, target)
	if err != nil {
		return nil, err
	}
	return []byte(DOCXBanner + text), nil
}

// zipStub passes the input bytes through unchanged under the zip media
// type. No archive is built.
func zipStub(_ *Dispatcher, _ context.Context, src source, _ Format) ([]byte, error) {
	return src.Data, nil
}
