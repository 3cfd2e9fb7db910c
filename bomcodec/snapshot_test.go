package bomcodec

import (
	"bytes"
	"flag"
	"testing"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/anchore/bomcodec/bomcodec/bom"
	"github.com/anchore/bomcodec/bomcodec/format"
	"github.com/anchore/bomcodec/internal/bomtest"
	"github.com/anchore/go-testutils"
)

var update = flag.Bool("update", false, "update the *.golden files for the document encoders")

func snapshotDocument() *bom.Document {
	timestamp := time.Date(2021, 3, 8, 10, 11, 12, 0, time.UTC)
	metadata := &bom.Metadata{
		Timestamp: &timestamp,
		Tools:     []bom.Tool{{Vendor: "anchore", Name: "bomcodec", Version: "0.1.0"}},
		Component: &bom.Component{Type: bom.Application, BOMRef: "acme-app", Name: "acme-app", Version: "1.0.0"},
	}
	leftPad := bom.Component{
		Type:      bom.Library,
		BOMRef:    "pkg:npm/left-pad@1.3.0",
		Publisher: "azer",
		Name:      "left-pad",
		Version:   "1.3.0",
		Scope:     bom.Required,
		Hashes:    []bom.Hash{{Algorithm: bom.SHA256, Value: "abc123"}},
		Licenses: &[]bom.LicenseChoice{
			{License: &bom.License{ID: "MIT"}},
			{Expression: "MIT OR Apache-2.0"},
		},
		PackageURL: "pkg:npm/left-pad@1.3.0",
	}
	dependencies := []bom.Dependency{
		{Ref: "acme-app", DependsOn: []string{leftPad.BOMRef}},
		{Ref: leftPad.BOMRef},
	}

	doc := bom.NewDocument(metadata, []bom.Component{leftPad}, nil, dependencies)
	doc.SerialNumber = bomtest.Serial
	return doc
}

func TestEncode_XMLSnapshot(t *testing.T) {
	var buffer bytes.Buffer
	if err := Encode(&buffer, snapshotDocument(), format.XMLFormat, WithPretty(true)); err != nil {
		t.Fatal(err)
	}

	actual := buffer.Bytes()
	if *update {
		testutils.UpdateGoldenFileContents(t, actual)
	}

	var expected = testutils.GetGoldenFileContents(t)

	if !bytes.Equal(expected, actual) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(expected), string(actual), true)
		t.Errorf("mismatched output:\n%s", dmp.DiffPrettyText(diffs))
	}
}
