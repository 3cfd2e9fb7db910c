/*
Package bomtest provides documents shared by the codec tests.
*/
package bomtest

import (
	"fmt"
	"time"

	"github.com/anchore/bomcodec/bomcodec/bom"
)

// Serial is the fixed serial number of every fixture document.
const Serial = "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"

func boolRef(b bool) *bool {
	return &b
}

func intRef(i int) *int {
	return &i
}

func timeRef(t time.Time) *time.Time {
	return &t
}

func licenses(choices ...bom.LicenseChoice) *[]bom.LicenseChoice {
	if choices == nil {
		choices = []bom.LicenseChoice{}
	}
	return &choices
}

// Timestamp is the metadata timestamp of FullDocument.
var Timestamp = time.Date(2021, 3, 8, 10, 11, 12, 345000000, time.FixedZone("", 2*60*60))

// EmptyDocument has no optional content at all.
func EmptyDocument() *bom.Document {
	return &bom.Document{
		BOMFormat:    bom.Format,
		SpecVersion:  bom.SpecVersion,
		SerialNumber: Serial,
		Version:      1,
	}
}

// MetadataOnlyDocument carries metadata (with a timestamp and a described component) and no other section.
func MetadataOnlyDocument() *bom.Document {
	doc := EmptyDocument()
	doc.Metadata = &bom.Metadata{
		Timestamp: timeRef(time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC)),
		Component: &bom.Component{
			Type:    bom.Application,
			Name:    "acme-app",
			Version: "1.0.0",
		},
	}
	return doc
}

// EmptySectionsDocument has every emit-empty collection present but empty.
func EmptySectionsDocument() *bom.Document {
	doc := bom.NewDocument(nil, []bom.Component{}, []bom.Service{}, []bom.Dependency{})
	doc.SerialNumber = Serial
	return doc
}

// FullDocument sets every field of every entity.
func FullDocument() *bom.Document {
	supplier := &bom.OrganizationalEntity{
		Name: "Acme Inc",
		URL:  []string{"https://acme.example.com", "https://acme.example.org"},
		Contact: []bom.OrganizationalContact{
			{Name: "Acme Professional Services", Email: "ps@acme.example.com", Phone: "555-1234"},
			{Name: "Acme Support", Email: "support@acme.example.com"},
		},
	}

	licenseText := &bom.AttachedText{
		ContentType: "text/plain",
		Encoding:    bom.Base64,
		Content:     "TUlUIExpY2Vuc2U=",
	}

	tomcat := bom.Component{
		Type:        bom.Library,
		MimeType:    "application/java-archive",
		BOMRef:      "pkg:maven/org.apache.tomcat/tomcat-catalina@9.0.14",
		Supplier:    supplier,
		Author:      "The Apache Software Foundation",
		Publisher:   "Apache",
		Group:       "org.apache.tomcat",
		Name:        "tomcat-catalina",
		Version:     "9.0.14",
		Description: "Apache Catalina",
		Scope:       bom.Required,
		Hashes: []bom.Hash{
			{Algorithm: bom.MD5, Value: "3942447fac867ae5cdb3229b658f4d48"},
			{Algorithm: bom.SHA1, Value: "e6b1000b94e835ffd37f4c6dcbdad43f4b48a02a"},
			{Algorithm: bom.BLAKE3, Value: "26cdc7fb3fd65fc3b621a4ef70bc7d2489d5c19e70c76cf7ec20e538df0047cf"},
		},
		Licenses: licenses(
			bom.LicenseChoice{License: &bom.License{ID: "Apache-2.0", Text: licenseText, URL: "https://www.apache.org/licenses/LICENSE-2.0"}},
			bom.LicenseChoice{License: &bom.License{Name: "Acme Commercial License"}},
			bom.LicenseChoice{Expression: "EPL-2.0 OR GPL-2.0-with-classpath-exception"},
		),
		Copyright:  "Copyright 2021 The Apache Software Foundation",
		CPE:        "cpe:2.3:a:apache:tomcat:9.0.14:*:*:*:*:*:*:*",
		PackageURL: "pkg:maven/org.apache.tomcat/tomcat-catalina@9.0.14?packaging=jar",
		Swid: &bom.Swid{
			TagID:      "swidgen-242eb18a-503e-ca37-393b-cf156ef09691_9.1.1",
			Name:       "Acme Application",
			Version:    "9.1.1",
			TagVersion: intRef(0),
			Patch:      boolRef(false),
			Text: &bom.AttachedText{
				ContentType: "text/xml",
				Encoding:    bom.Base64,
				Content:     "PD94bWwgdmVyc2lvbj0iMS4wIj8+",
			},
			URL: "https://www.example.com/swid",
		},
		Modified: boolRef(true),
		Pedigree: &bom.Pedigree{
			Ancestors: []bom.Component{
				{Type: bom.Library, Group: "org.apache.tomcat", Name: "tomcat-catalina", Version: "9.0.14", PackageURL: "pkg:maven/org.apache.tomcat/tomcat-catalina@9.0.14"},
			},
			Descendants: []bom.Component{
				{Type: bom.Library, Name: "tomcat-catalina-fork", Version: "9.0.14.1"},
			},
			Variants: []bom.Component{
				{Type: bom.Framework, Name: "tomcat-embed", Version: "9.0.14"},
			},
			Commits: []bom.Commit{
				{
					UID: "7638417db6d59f3c431d3e1f261cc637155684cd",
					URL: "https://location/to/7638417db6d59f3c431d3e1f261cc637155684cd",
					Author: &bom.IdentifiableAction{
						Timestamp: timeRef(time.Date(2018, 11, 7, 22, 1, 45, 0, time.UTC)),
						Name:      "John Doe",
						Email:     "john.doe@example.com",
					},
					Committer: &bom.IdentifiableAction{
						Timestamp: timeRef(time.Date(2018, 11, 7, 22, 1, 45, 0, time.UTC)),
						Name:      "Jane Doe",
					},
					Message: "Initial commit",
				},
			},
			Patches: []bom.Patch{
				{
					Type: bom.BackportPatch,
					Diff: &bom.Diff{
						Text: &bom.AttachedText{Content: "blah blah"},
						URL:  "https://patch.example.com",
					},
					Resolves: []bom.Issue{
						{
							Type:        bom.SecurityIssue,
							ID:          "CVE-2019-9999",
							Name:        "CVE-2019-9999",
							Description: "blah blah",
							Source:      &bom.IssueSource{Name: "NVD", URL: "https://nvd.nist.gov/vuln/detail/CVE-2019-9999"},
							References:  []string{"https://example.com/a", "https://example.com/b"},
						},
					},
				},
				{Type: bom.CherryPickPatch},
			},
			Notes: "Commentary here",
		},
		ExternalReferences: []bom.ExternalReference{
			{Type: bom.VCSReference, URL: "https://github.com/apache/tomcat", Comment: "upstream"},
			{Type: bom.BuildMetaReference, URL: "https://ci.example.com/build/1"},
		},
		Components: []bom.Component{
			{Type: bom.File, Name: "catalina.jar", Version: "", Scope: bom.Optional},
		},
	}

	metadata := &bom.Metadata{
		Timestamp: timeRef(Timestamp),
		Tools: []bom.Tool{
			{
				Vendor:  "anchore",
				Name:    "bomcodec",
				Version: "0.1.0",
				Hashes:  []bom.Hash{{Algorithm: bom.SHA256, Value: "ab12"}},
			},
		},
		Authors: []bom.OrganizationalContact{
			{Name: "Samantha Wright", Email: "samantha.wright@example.com", Phone: "800-555-1212"},
		},
		Component: &bom.Component{
			Type:     bom.Application,
			BOMRef:   "acme-app",
			Name:     "acme-app",
			Version:  "1.0.0",
			Licenses: licenses(),
		},
		Manufacture: supplier,
		Supplier:    &bom.OrganizationalEntity{Name: "Acme Distribution"},
	}

	services := []bom.Service{
		{
			BOMRef:        "b2a46a4b-8367-4bae-9820-95557cfe03a8",
			Provider:      &bom.OrganizationalEntity{Name: "Partner Org", URL: []string{"https://partner.org"}},
			Group:         "org.partner",
			Name:          "Stock ticker service",
			Version:       "2020-Q2",
			Description:   "Provides real-time stock information",
			Endpoints:     []string{"https://partner.org/api/v1/lookup", "https://partner.org/api/v1/stock"},
			Authenticated: boolRef(true),
			TrustBoundary: boolRef(false),
			Data: []bom.DataClassification{
				{Flow: bom.Inbound, Classification: "PII"},
				{Flow: bom.BiDirectional, Classification: "Customer"},
				{Flow: bom.UndeterminedFlow, Classification: "Public"},
			},
			Licenses: licenses(bom.LicenseChoice{License: &bom.License{Name: "Partner license"}}),
			ExternalReferences: []bom.ExternalReference{
				{Type: bom.WebsiteReference, URL: "http://partner.org"},
				{Type: bom.DocumentationReference, URL: "http://api.partner.org/swagger"},
			},
			Services: []bom.Service{
				{Name: "Quote service", Endpoints: []string{"https://partner.org/api/v1/quote"}},
			},
		},
	}

	dependencies := []bom.Dependency{
		{Ref: "acme-app", DependsOn: []string{"pkg:maven/org.apache.tomcat/tomcat-catalina@9.0.14", "b2a46a4b-8367-4bae-9820-95557cfe03a8"}},
		{Ref: "pkg:maven/org.apache.tomcat/tomcat-catalina@9.0.14"},
	}

	doc := bom.NewDocument(metadata, []bom.Component{tomcat}, services, dependencies)
	doc.SerialNumber = Serial
	doc.Version = 3
	return doc
}

// MixedDocument sets some optional fields and leaves others absent.
func MixedDocument() *bom.Document {
	doc := EmptyDocument()
	doc.Components = &[]bom.Component{
		{Type: bom.Library, Name: "left-pad", Version: "1.3.0", PackageURL: "pkg:npm/left-pad@1.3.0"},
		{Type: bom.Container, Name: "alpine", Version: "3.14", Hashes: []bom.Hash{{Algorithm: bom.SHA512, Value: "ff"}}, Modified: boolRef(false)},
		{Type: bom.OperatingSystem, Name: "linux", Version: "5.10", Licenses: licenses(bom.LicenseChoice{Expression: "GPL-2.0-only"})},
	}
	doc.Dependencies = &[]bom.Dependency{{Ref: "left-pad"}}
	return doc
}

// DeepComponent returns a chain of depth nested components; every level has two children, the first of which
// continues the chain.
func DeepComponent(depth int) bom.Component {
	root := bom.Component{Type: bom.Library, Name: "level-0", Version: "0"}
	current := &root
	for level := 1; level <= depth; level++ {
		current.Components = []bom.Component{
			{Type: bom.Library, Name: fmt.Sprintf("level-%d", level), Version: fmt.Sprint(level)},
			{Type: bom.File, Name: fmt.Sprintf("sibling-%d", level), Version: fmt.Sprint(level)},
		}
		current = &current.Components[0]
	}
	return root
}
