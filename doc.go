// Package lessonplan generates classroom lesson plans with a language model
// and prints them to PDF using headless Chrome.
//
// # Generating
//
// A Generator turns form fields into an HTML lesson table:
//
//	gen, err := lessonplan.NewGenerator(lessonplan.GeneratorConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := gen.Generate(ctx, lessonplan.SampleRequest())
//
// Generate never fails. Without a credential, or when the provider errors,
// res.Success is false, res.HTML holds a fallback table built from the
// request and res.ErrorDetail says why.
//
// The completion is normalized before it is returned:
//
//  1. A Markdown code fence around the whole answer is removed
//  2. Answers with no HTML markup are converted from Markdown (Goldmark, GFM)
//  3. Script and iframe blocks, javascript: schemes and on* handlers are stripped
//
// # Rendering
//
// A Renderer prints HTML to PDF, one browser process per call:
//
//	r, err := lessonplan.NewRenderer(lessonplan.WithRenderTimeout(30 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := r.Render(ctx, html, lessonplan.RenderOptions{PageFormat: "Letter"})
//
// The fragment is wrapped in a full document with the print stylesheet and
// an @page rule for the requested format. When the default browser launch
// fails, the platform's usual Chrome and Chromium paths are tried in order.
// The browser is always closed, and its process group killed if closing fails.
//
// # Concurrency
//
// Generator and Renderer are immutable after construction and safe for
// concurrent use.
package lessonplan
