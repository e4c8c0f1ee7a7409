package parse

import (
	"errors"
	"strings"
	"testing"
)

const pipeReport = `Cluster|Allocated|Down|PLND Down|Idle|Planned|Reported
cluster1|1000|50|20|0|0|1000
`

const plainReport = `--------------------------------------------------------------------------------
Cluster Utilization 2025-01-01 - 2025-02-01
Usage reported in TRES Minutes
--------------------------------------------------------------------------------
  Cluster Allocated     Down PLND Down     Idle  Planned Reported
--------- --------- -------- --------- -------- -------- --------
 cluster1      1000       50        20        0        0     1000
`

func TestSelectMetricsPipeMode(t *testing.T) {
	got, err := SelectMetrics(pipeReport, ModePipe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := RawMetrics{Reported: "1000", Down: "50", PlannedDown: "20"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSelectMetricsWhitespaceMode(t *testing.T) {
	got, err := SelectMetrics(plainReport, ModeWhitespace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := RawMetrics{Reported: "1000", Down: "50", PlannedDown: "20"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSelectMetricsRowShapes(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		mode    DelimiterMode
		want    RawMetrics
		wantErr bool
	}{
		{
			name:    "empty_report",
			text:    "",
			mode:    ModePipe,
			wantErr: true,
		},
		{
			name:    "header_only",
			text:    "Cluster|Allocated|Down|PLND Down|Idle|Planned|Reported\n",
			mode:    ModePipe,
			wantErr: true,
		},
		{
			name:    "blank_lines_only",
			text:    "\n   \n\t\n",
			mode:    ModeWhitespace,
			wantErr: true,
		},
		{
			name:    "too_few_fields",
			text:    "cluster1|1000|50|20|0\n",
			mode:    ModePipe,
			wantErr: true,
		},
		{
			name:    "numeric_first_field_rejected",
			text:    "12345|1000|50|20|0|0|1000\n",
			mode:    ModePipe,
			wantErr: true,
		},
		{
			name:    "non_numeric_metric_field_rejected",
			text:    "cluster1|1000|fifty|20|0|0|1000\n",
			mode:    ModePipe,
			wantErr: true,
		},
		{
			name: "suffixed_fields_accepted",
			text: "bigcluster|1,234k|12m|5g|0|0|2.5G\n",
			mode: ModePipe,
			want: RawMetrics{Reported: "2.5G", Down: "12m", PlannedDown: "5g"},
		},
		{
			name: "trailing_delimiter_tolerated",
			text: "cluster1|1000|50|20|0|0|1000|\n",
			mode: ModePipe,
			want: RawMetrics{Reported: "1000", Down: "50", PlannedDown: "20"},
		},
		{
			name: "first_matching_row_wins",
			text: "cluster1|1000|50|20|0|0|1000\ncluster2|9999|1|1|0|0|9999\n",
			mode: ModePipe,
			want: RawMetrics{Reported: "1000", Down: "50", PlannedDown: "20"},
		},
		{
			name: "extra_trailing_fields_tolerated",
			text: " cluster1  1000  50  20  0  0  1000  777\n",
			mode: ModeWhitespace,
			want: RawMetrics{Reported: "1000", Down: "50", PlannedDown: "20"},
		},
		{
			name: "whitespace_header_skipped_without_pipe_chars",
			text: "Cluster Allocated Down PLND Down Idle Planned Reported\ncluster1 2000 100 40 0 0 2000\n",
			mode: ModeWhitespace,
			want: RawMetrics{Reported: "2000", Down: "100", PlannedDown: "40"},
		},
		{
			name: "alloc_header_variant_skipped",
			text: "Cluster|Alloc|Down|PLND Down|Idle|Reserved|Reported\ncluster1|1000|50|20|0|0|1000\n",
			mode: ModePipe,
			want: RawMetrics{Reported: "1000", Down: "50", PlannedDown: "20"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectMetrics(tc.text, tc.mode)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected NoDataRowError, got %+v", got)
				}
				var noRow *NoDataRowError
				if !errors.As(err, &noRow) {
					t.Fatalf("expected NoDataRowError, got %T", err)
				}
				if noRow.Raw != tc.text {
					t.Fatalf("expected raw text to be preserved in the error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestSelectMetricsSkipsBannerAndSeparators(t *testing.T) {
	// Title line and dash separator must be skipped even when indented.
	text := "   Cluster Utilization 2025-01-01 - 2025-02-01\n" +
		"--------- ---------\n" +
		"cluster1 1000 50 20 0 0 1000\n"
	got, err := SelectMetrics(text, ModeWhitespace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Reported != "1000" || got.Down != "50" || got.PlannedDown != "20" {
		t.Fatalf("unexpected extraction: %+v", got)
	}
}

func TestSelectMetricsIdempotent(t *testing.T) {
	first, err1 := SelectMetrics(plainReport, ModeWhitespace)
	second, err2 := SelectMetrics(plainReport, ModeWhitespace)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Fatalf("selector not deterministic: %+v vs %+v", first, second)
	}
}

func TestDelimiterModeString(t *testing.T) {
	if ModePipe.String() != "pipe" || ModeWhitespace.String() != "whitespace" {
		t.Fatalf("unexpected mode names: %q, %q", ModePipe, ModeWhitespace)
	}
}

func TestFieldErrorContext(t *testing.T) {
	raw := RawMetrics{Reported: "1000", Down: "bad", PlannedDown: "20"}
	_, parseErr := ParseMagnitude(raw.Down)
	err := FieldError("down", raw, parseErr)

	var malformed *MalformedNumberError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected wrapped MalformedNumberError, got %T", err)
	}
	for _, fragment := range []string{"down", `"bad"`, `"1000"`, `"20"`} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected error %q to mention %s", err.Error(), fragment)
		}
	}
}
