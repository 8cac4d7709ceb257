package generator

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ByLCY/admitcard/layout"
	"github.com/ByLCY/admitcard/records"
)

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

func writeLogo(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 100, B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("编码 logo 失败: %v", err)
	}
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("写入 logo 失败: %v", err)
	}
	return path
}

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "students.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入 CSV 失败: %v", err)
	}
	return path
}

const fourStudents = "Name,ID,Class\nAyesha,1001,Six\nRahim,1002,Seven\nKarim,1003,Eight\nNadia,1004,Nine\n"

func TestGenerateAdmitCardsMissingInputs(t *testing.T) {
	dir := t.TempDir()
	logo := writeLogo(t, dir)
	data := writeCSV(t, dir, fourStudents)

	cases := []struct {
		name, data, exam, logo, field string
	}{
		{"exam", data, "  ", logo, "exam name"},
		{"logo", data, "Half Yearly Exam", "", "logo"},
		{"data", "", "Half Yearly Exam", logo, "data file"},
	}
	for _, tc := range cases {
		_, err := GenerateAdmitCards(tc.data, tc.exam, tc.logo, Options{Output: filepath.Join(dir, "out.pdf")})
		var missing *layout.MissingInputError
		if !errors.As(err, &missing) || missing.Field != tc.field {
			t.Fatalf("%s: expected MissingInputError(%s), got %v", tc.name, tc.field, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "out.pdf")); !os.IsNotExist(err) {
		t.Fatalf("no output expected when inputs are missing")
	}
}

func TestGenerateAdmitCardsFPDF(t *testing.T) {
	dir := t.TempDir()
	logo := writeLogo(t, dir)
	data := writeCSV(t, dir, fourStudents)
	outDir := filepath.Join(dir, "out")
	out := filepath.Join(outDir, "cards.pdf")

	var logs bytes.Buffer
	path, err := GenerateAdmitCards(data, "Half Yearly Exam", logo, Options{
		Output:  out,
		Backend: "fpdf",
		Logger:  log.New(&logs, "", 0),
	})
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if path != out {
		t.Fatalf("unexpected path %q", path)
	}
	pdfBytes, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("读取输出失败: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if got := len(pageObject.FindAll(pdfBytes, -1)); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("读取目录失败: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
	if !strings.Contains(logs.String(), "4 张准考证，共 2 页") || !strings.Contains(logs.String(), "fpdf") {
		t.Fatalf("unexpected log output: %q", logs.String())
	}
}

func TestGenerateCanvasWithPreviewAndDebug(t *testing.T) {
	dir := t.TempDir()
	logo := writeLogo(t, dir)
	recs := []records.StudentRecord{{Name: "Ayesha", ID: "1001", Class: "Six", Row: 2}}
	opts := Options{
		Output:  filepath.Join(dir, "cards.pdf"),
		Preview: filepath.Join(dir, "preview", "page1.png"),
		Debug:   filepath.Join(dir, "debug", "layout.json"),
	}

	res, err := Generate(recs, "Final Exam", logo, opts)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if len(res.Document.Pages) != 1 || res.Document.CardCount() != 1 {
		t.Fatalf("unexpected document: %d pages, %d cards", len(res.Document.Pages), res.Document.CardCount())
	}
	if got := res.Document.Pages[0].Cards[0].Images; len(got) != 1 {
		t.Fatalf("expected logo on card, got %d images", len(got))
	}

	pdfBytes, err := os.ReadFile(res.Path)
	if err != nil || !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("invalid PDF output: %v", err)
	}
	img, err := os.ReadFile(opts.Preview)
	if err != nil || !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Fatalf("invalid preview: %v", err)
	}
	debug, err := os.ReadFile(opts.Debug)
	if err != nil || !bytes.Contains(debug, []byte(`"Ayesha"`)) {
		t.Fatalf("invalid debug JSON: %v", err)
	}
}

func TestGenerateMalformedRecordWritesNothing(t *testing.T) {
	dir := t.TempDir()
	logo := writeLogo(t, dir)
	data := writeCSV(t, dir, "Name,ID,Class\nAyesha,1001,Six\nRahim,,Seven\n")
	out := filepath.Join(dir, "cards.pdf")

	_, err := GenerateAdmitCards(data, "Half Yearly Exam", logo, Options{Output: out})
	var malformed *layout.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
	if malformed.Ordinal != 1 || malformed.Row != 3 {
		t.Fatalf("unexpected error location: %+v", malformed)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("partial output must not exist")
	}
}

func TestGenerateFailedSideOutputRemovesPDF(t *testing.T) {
	dir := t.TempDir()
	logo := writeLogo(t, dir)
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	recs := []records.StudentRecord{{Name: "Ayesha", ID: "1001", Class: "Six"}}

	cases := []struct {
		name string
		opts Options
	}{
		{"preview", Options{Preview: filepath.Join(blocker, "page1.png")}},
		{"debug", Options{Preview: filepath.Join(dir, "page1.png"), Debug: filepath.Join(blocker, "layout.json")}},
	}
	for _, tc := range cases {
		out := filepath.Join(dir, tc.name+".pdf")
		tc.opts.Output = out
		tc.opts.Backend = "fpdf"
		if _, err := Generate(recs, "Exam", logo, tc.opts); err == nil {
			t.Fatalf("%s: expected error for path under a regular file", tc.name)
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Fatalf("%s: PDF must not survive a failed run", tc.name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "page1.png")); !os.IsNotExist(err) {
		t.Fatalf("preview must be removed when the debug dump fails")
	}
}

func TestGenerateBadLogo(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	recs := []records.StudentRecord{{Name: "Ayesha", ID: "1001", Class: "Six"}}
	_, err := Generate(recs, "Exam", bad, Options{Output: filepath.Join(dir, "cards.pdf")})
	var decodeErr *layout.ImageDecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Path != bad {
		t.Fatalf("expected ImageDecodeError, got %v", err)
	}
}

func TestGenerateEmptyRecordsAndUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	logo := writeLogo(t, dir)

	_, err := Generate(nil, "Exam", logo, Options{Output: filepath.Join(dir, "cards.pdf")})
	var missing *layout.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingInputError for empty records, got %v", err)
	}

	recs := []records.StudentRecord{{Name: "Ayesha", ID: "1001", Class: "Six"}}
	if _, err := Generate(recs, "Exam", logo, Options{Backend: "svg"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestGenerateDefaultOutput(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	logo := writeLogo(t, tmp)
	recs := []records.StudentRecord{{Name: "Ayesha", ID: "1001", Class: "Six"}}

	res, err := Generate(recs, "Exam", logo, Options{Backend: "fpdf"})
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if want := filepath.Join(tmp, DefaultFileName); res.Path != want {
		t.Fatalf("default output got=%q want=%q", res.Path, want)
	}
}

func TestLayoutWithoutWriting(t *testing.T) {
	doc, err := Layout(nil, "Exam", "", Options{Backend: "fpdf"})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Fatalf("expected 0 pages, got %d", len(doc.Pages))
	}

	recs := make([]records.StudentRecord, 7)
	for i := range recs {
		recs[i] = records.StudentRecord{Name: "S", ID: "1", Class: "C"}
	}
	doc, err = Layout(recs, "Exam", "", Options{})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if len(doc.Pages) != 3 || len(doc.Pages[2].Cards) != 1 {
		t.Fatalf("unexpected pagination: %d pages", len(doc.Pages))
	}
	for _, c := range doc.Cards() {
		if len(c.Images) != 0 {
			t.Fatalf("card without logo must not carry images")
		}
	}
}
