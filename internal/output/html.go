package output

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"benchdiff/internal/threshold"
)

// HTMLReportData contains all data needed for the HTML report template.
type HTMLReportData struct {
	GeneratedAt      string
	OldRoot          string
	NewRoot          string
	Comparisons      []Comparison
	ThresholdResults []threshold.Result
	ThresholdsPassed int
	ThresholdsFailed int
}

// GenerateHTMLReport generates a standalone HTML comparison report.
func GenerateHTMLReport(w io.Writer, oldRoot, newRoot string, comps []Comparison, thresholdResults []threshold.Result) error {
	data := HTMLReportData{
		GeneratedAt:      time.Now().Format(time.RFC3339),
		OldRoot:          oldRoot,
		NewRoot:          newRoot,
		Comparisons:      comps,
		ThresholdResults: thresholdResults,
	}
	for _, tr := range thresholdResults {
		if tr.Pass {
			data.ThresholdsPassed++
		} else {
			data.ThresholdsFailed++
		}
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"formatDelta": func(f float64) string {
			return fmt.Sprintf("%+.2f%%", f)
		},
		"deltaClass": func(f float64) string {
			if f < 0 {
				return "improvement"
			}
			return "regression"
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Benchmark Comparison Report</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
            padding: 20px;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px 40px;
        }
        header h1 {
            font-size: 2rem;
            margin-bottom: 10px;
        }
        header .meta {
            opacity: 0.9;
            font-size: 0.9rem;
        }
        .content {
            padding: 40px;
        }
        .section {
            margin-bottom: 40px;
        }
        .section h2 {
            font-size: 1.2rem;
            margin-bottom: 15px;
            color: #2c3e50;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.9rem;
        }
        th {
            background: #f8f9fa;
            text-align: left;
            padding: 10px 12px;
            border-bottom: 2px solid #dee2e6;
            color: #6c757d;
            text-transform: uppercase;
            font-size: 0.75rem;
            letter-spacing: 0.5px;
        }
        td {
            padding: 10px 12px;
            border-bottom: 1px solid #ecf0f1;
        }
        td.num {
            text-align: right;
            font-variant-numeric: tabular-nums;
        }
        .improvement {
            color: #10b981;
            font-weight: bold;
        }
        .regression {
            color: #ef4444;
            font-weight: bold;
        }
        .threshold-pass {
            color: #10b981;
        }
        .threshold-fail {
            color: #ef4444;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Benchmark Comparison Report</h1>
            <div class="meta">
                <div>Old run: {{.OldRoot}}</div>
                <div>New run: {{.NewRoot}}</div>
                <div>Generated: {{.GeneratedAt}}</div>
            </div>
        </header>
        <div class="content">
            {{range .Comparisons}}
            <div class="section">
                <h2>{{.Benchmark}}</h2>
                <table>
                    <thead>
                        <tr>
                            <th>Field</th>
                            <th>Old</th>
                            <th>Std Dev</th>
                            <th>New</th>
                            <th>Std Dev</th>
                            <th>Delta</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Rows}}
                        <tr>
                            <td>{{.Field}}</td>
                            <td class="num">{{.OldValue}} {{.OldSuffix}}</td>
                            <td class="num">{{.OldStdDev}}</td>
                            <td class="num">{{.NewValue}} {{.NewSuffix}}</td>
                            <td class="num">{{.NewStdDev}}</td>
                            <td class="num {{deltaClass .PercentDelta}}">{{formatDelta .PercentDelta}}</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
            {{if .ThresholdResults}}
            <div class="section">
                <h2>Thresholds ({{.ThresholdsPassed}} passed, {{.ThresholdsFailed}} failed)</h2>
                <table>
                    <thead>
                        <tr>
                            <th>Benchmark</th>
                            <th>Threshold</th>
                            <th>Actual</th>
                            <th>Status</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .ThresholdResults}}
                        <tr>
                            <td>{{.Benchmark}}</td>
                            <td>{{.Threshold.Raw}}</td>
                            <td class="num">{{formatDelta .Actual}}</td>
                            {{if .Pass}}
                            <td class="threshold-pass">PASS</td>
                            {{else}}
                            <td class="threshold-fail">FAIL</td>
                            {{end}}
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
        </div>
    </div>
</body>
</html>
`
