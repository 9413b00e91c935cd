package report

// htmlCoverageReport is the templates contents for html style coverage report.
var htmlCoverageReport = "" +
	`<!DOCTYPE html>
<html lang="en">

<head>
    <meta charset="utf-8">
    <title>Coverage result</title>
    <style type="text/css">
        .target {
            margin-top: 2em;
        }

        .target-name {
            font-weight: bold;
        }

        table {
            border-collapse: collapse;
        }

        td, th {
            border: 1px solid #bdbdbd;
            padding: 0.2em 0.6em;
        }
    </style>
</head>

<body>
    <h1>Coverage result</h1>

    <ul>
        <li>
            <b>Overall Percent Covered</b>: {{ FormatPercent .CoveragePercent }}%
        </li>
        <li>
            <b>Executable</b>: {{ NormalizeLines .ExecutableLines }}
        </li>
        <li>
            <b>Covered</b>: {{ NormalizeLines .CoveredLines }}
        </li>
    </ul>

    {{ if .Filtered }}
        <p>Targets: {{ range $i, $t := .Filter }}{{ if $i }}, {{ end }}{{ $t }}{{ end }}</p>
    {{ end }}

    <h2>Details</h2>

    {{ if .Targets }}
        {{ range .Targets }}
        <div class="target">
            <details>
                <summary class="target-name">{{ .Name }} ({{ FormatFraction .LineCoverage }}%)</summary>
                <table>
                    <thead>
                        <tr>
                            <th>File</th>
                            <th>Coverage</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{ range .Files }}
                        <tr>
                            <td>{{ .Name }}</td>
                            <td>{{ FormatFraction .LineCoverage }}%</td>
                        </tr>
                        {{ end }}
                    </tbody>
                </table>
            </details>
        </div>
        {{ end }}
    {{ else }}
        <p>No targets with coverage information.</p>
    {{ end }}

    {{ if .UnmatchedTargets }}
        <h3>Unmatched Targets</h3>
        <ul>
        {{ range .UnmatchedTargets }}
            <li>{{ . }}</li>
        {{ end }}
        </ul>
    {{ end }}

</body>

</html>
`
