// Package docconv converts single documents between formats and provides a
// few small PDF tools, all under one import:
//
//   - document conversion to pdf, txt, html, png, jpg, plus docx and zip stubs
//   - merging PDFs into one document
//   - generating a task list PDF
//
// # Conversion
//
// The caller supplies the bytes, the declared media type and the original
// file name. The declared type is trusted; the bytes are not sniffed.
//
//	res, err := docconv.Convert(ctx, docconv.Document{
//	    Data:      []byte("Hello World"),
//	    MediaType: "text/plain",
//	    FileName:  "note.txt",
//	}, docconv.FormatHTML)
//
// For repeated use, or to change defaults, create a [Dispatcher]:
//
//	d := docconv.NewDispatcher(
//	    docconv.WithLogger(logger),
//	    docconv.WithPageConfig(docconv.PageConfig{Size: docconv.Letter}),
//	    docconv.WithPDFTextExtractor(docconv.ParsedPDFText),
//	)
//	res, err := d.Convert(ctx, doc, docconv.FormatPDF)
//
// Text-producing targets share one layout routine, [Paginate], which wraps
// lines to the page width and splits them into pages.
//
// The docx and zip targets are stubs. docx yields the extracted text behind
// [DOCXBanner], labelled with the DOCX media type; zip passes the input
// through unchanged under application/zip. Neither builds a real container.
//
// A [Result] gives access to the output:
//
//	res.Bytes()                        // []byte
//	res.MediaType()                    // "text/html"
//	res.FileName()                     // "note.html"
//	res.WriteToFile(res.FileName(), 0o644)
//
// # Errors
//
// Failures are typed and can be matched with [errors.Is] against
// [ErrUnsupportedSource], [ErrNotAnImage], [ErrDecode] and [ErrEncode], or
// with [errors.As] against the corresponding struct types.
//
// # PDF tools
//
//	merged, err := docconv.MergePDFs(ctx, []docconv.Document{a, b})
//	tasks, err  := docconv.GenerateTaskList(ctx, "Buy milk")
//
// # Rendering HTML with Chrome
//
// By default html→pdf strips the markup and lays out the remaining text.
// A [ChromeRenderer] renders the markup instead:
//
//	r, err := docconv.NewChromeRenderer(docconv.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	d := docconv.NewDispatcher(docconv.WithHTMLRenderer(r))
package docconv
