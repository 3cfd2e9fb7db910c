package bom

import "time"

// Component describes a piece of software, hardware or data. Components nest to arbitrary depth.
type Component struct {
	Type               Classification        `cdx:"type,attr,required"`
	MimeType           string                `cdx:"mime-type,attr"`
	BOMRef             string                `cdx:"bom-ref,attr"`
	Supplier           *OrganizationalEntity `cdx:"supplier"`
	Author             string                `cdx:"author"`
	Publisher          string                `cdx:"publisher"`
	Group              string                `cdx:"group"`
	Name               string                `cdx:"name,required"`
	Version            string                `cdx:"version,required"`
	Description        string                `cdx:"description"`
	Scope              Scope                 `cdx:"scope"`
	Hashes             []Hash                `cdx:"hashes,xml=hashes>hash"`
	Licenses           *[]LicenseChoice      `cdx:"licenses,choice,emitempty"`
	Copyright          string                `cdx:"copyright"`
	CPE                string                `cdx:"cpe"`
	PackageURL         string                `cdx:"purl"`
	Swid               *Swid                 `cdx:"swid"`
	Modified           *bool                 `cdx:"modified"`
	Pedigree           *Pedigree             `cdx:"pedigree"`
	ExternalReferences []ExternalReference   `cdx:"externalReferences,xml=externalReferences>reference"`
	Components         []Component           `cdx:"components,xml=components>component"`
}

// Walk visits c and every nested component depth first, parents before children and siblings in order. The
// depth of c is 0. Returning false from fn skips the children of the visited component.
func (c *Component) Walk(fn func(component *Component, depth int) bool) {
	type entry struct {
		component *Component
		depth     int
	}
	stack := []entry{{component: c}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(current.component, current.depth) {
			continue
		}
		children := current.component.Components
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{component: &children[i], depth: current.depth + 1})
		}
	}
}

// Pedigree records the lineage of a component.
type Pedigree struct {
	Ancestors   []Component `cdx:"ancestors,xml=ancestors>component"`
	Descendants []Component `cdx:"descendants,xml=descendants>component"`
	Variants    []Component `cdx:"variants,xml=variants>component"`
	Commits     []Commit    `cdx:"commits,xml=commits>commit"`
	Patches     []Patch     `cdx:"patches,xml=patches>patch"`
	Notes       string      `cdx:"notes"`
}

type Commit struct {
	UID       string              `cdx:"uid"`
	URL       string              `cdx:"url"`
	Author    *IdentifiableAction `cdx:"author"`
	Committer *IdentifiableAction `cdx:"committer"`
	Message   string              `cdx:"message"`
}

// IdentifiableAction is who did something and when.
type IdentifiableAction struct {
	Timestamp *time.Time `cdx:"timestamp"`
	Name      string     `cdx:"name"`
	Email     string     `cdx:"email"`
}

type Patch struct {
	Type     PatchClassification `cdx:"type,attr,required"`
	Diff     *Diff               `cdx:"diff"`
	Resolves []Issue             `cdx:"resolves,xml=resolves>issue"`
}

type Diff struct {
	Text *AttachedText `cdx:"text"`
	URL  string        `cdx:"url"`
}

type Issue struct {
	Type        IssueClassification `cdx:"type,attr,required"`
	ID          string              `cdx:"id"`
	Name        string              `cdx:"name"`
	Description string              `cdx:"description"`
	Source      *IssueSource        `cdx:"source"`
	References  []string            `cdx:"references,xml=references>url"`
}

type IssueSource struct {
	Name string `cdx:"name"`
	URL  string `cdx:"url"`
}

// Swid is a software identification tag (ISO/IEC 19770-2).
type Swid struct {
	TagID      string        `cdx:"tagId,attr,required"`
	Name       string        `cdx:"name,attr,required"`
	Version    string        `cdx:"version,attr"`
	TagVersion *int          `cdx:"tagVersion,attr"`
	Patch      *bool         `cdx:"patch,attr"`
	Text       *AttachedText `cdx:"text"`
	URL        string        `cdx:"url"`
}

type Hash struct {
	Algorithm HashAlgorithm `cdx:"alg,attr,required"`
	Value     string        `cdx:"content,chardata,required"`
}

// LicenseChoice holds exactly one of a License or an SPDX license expression.
type LicenseChoice struct {
	License    *License `cdx:"license"`
	Expression string   `cdx:"expression"`
}

type License struct {
	ID   string        `cdx:"id"`
	Name string        `cdx:"name"`
	Text *AttachedText `cdx:"text"`
	URL  string        `cdx:"url"`
}

type ExternalReference struct {
	Type    ExternalReferenceType `cdx:"type,attr,required"`
	URL     string                `cdx:"url,required"`
	Comment string                `cdx:"comment"`
}
