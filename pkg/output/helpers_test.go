package output

import (
	"errors"

	"github.com/ccollicutt/encfix/pkg/converter"
	"github.com/ccollicutt/encfix/pkg/detector"
	"github.com/ccollicutt/encfix/pkg/scanner"
	"github.com/ccollicutt/encfix/pkg/verifier"
)

func createScanReport() *ScanReport {
	r := scanner.NewResult("/src")
	r.Add("a.lisp", scanner.ScanBytes([]byte("; caf\xe9 \xe9t\xe9\n"), 80))
	r.Add("b.lisp", nil)
	r.AddError("c.lisp", errors.New("permission denied"))
	return NewScanReport(r)
}

func createFixReport(dryRun bool) *FixReport {
	r := converter.NewResult(dryRun)
	r.Add("a.lisp", converter.ConvertBytes([]byte("; caf\xe9\n(setq x \"\xe9\")\n"), 80))
	r.Add("b.lisp", converter.ConvertBytes([]byte("(a)\n"), 80))
	r.Add("c.lisp", converter.ConvertBytes([]byte("; \xe2\x80\x9cok\xe2\x80\x9d\n"), 80))
	r.Excluded = 2
	return NewFixReport("/src", r)
}

func createVerifyReport() *VerifyReport {
	return NewVerifyReport(&verifier.Result{
		Root:       "/src",
		ValidFiles: 3,
		Problems: map[string][]verifier.Problem{
			"left.lisp": verifier.FindProblems([]byte("(f \"\xe9\")\n"), 80),
		},
	})
}

func createDetectReport() *DetectReport {
	d := detector.New()
	a := d.Detect([]byte("(a)\n"))
	a.Path = "a.lisp"
	b := d.Detect([]byte("; caf\xe9\n"))
	b.Path = "b.lisp"
	return &DetectReport{Files: []*detector.DetectionResult{a, b}}
}
