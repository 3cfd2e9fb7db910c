package bom

import "github.com/anchore/bomcodec/bomcodec/schema"

// Classification is the type of a component.
type Classification int

const (
	UnknownClassification Classification = iota
	Application
	Framework
	Library
	Container
	OperatingSystem
	Device
	Firmware
	File
)

// Classifications is the canonical string table of Classification.
var Classifications = schema.NewEnum("component type", map[Classification]schema.Variant{
	Application:     {Current: "application", Legacy: "APPLICATION"},
	Framework:       {Current: "framework", Legacy: "FRAMEWORK"},
	Library:         {Current: "library", Legacy: "LIBRARY"},
	Container:       {Current: "container", Legacy: "CONTAINER"},
	OperatingSystem: {Current: "operating-system", Legacy: "OPERATING-SYSTEM"},
	Device:          {Current: "device", Legacy: "DEVICE"},
	Firmware:        {Current: "firmware", Legacy: "FIRMWARE"},
	File:            {Current: "file", Legacy: "FILE"},
})

func (c Classification) String() string {
	return Classifications.String(c)
}

// Scope describes whether a component is needed at runtime.
type Scope int

const (
	UnknownScope Scope = iota
	Required
	Optional
	Excluded
)

// Scopes is the canonical string table of Scope.
var Scopes = schema.NewEnum("scope", map[Scope]schema.Variant{
	Required: {Current: "required", Legacy: "Required"},
	Optional: {Current: "optional", Legacy: "Optional"},
	Excluded: {Current: "excluded", Legacy: "Excluded"},
})

func (s Scope) String() string {
	return Scopes.String(s)
}

// HashAlgorithm names the algorithm a hash value was computed with.
type HashAlgorithm int

const (
	UnknownHashAlgorithm HashAlgorithm = iota
	MD5
	SHA1
	SHA256
	SHA384
	SHA512
	SHA3_256
	SHA3_384
	SHA3_512
	BLAKE2b256
	BLAKE2b384
	BLAKE2b512
	BLAKE3
)

// HashAlgorithms is the canonical string table of HashAlgorithm.
var HashAlgorithms = schema.NewEnum("hash algorithm", map[HashAlgorithm]schema.Variant{
	MD5:        {Current: "MD5"},
	SHA1:       {Current: "SHA-1"},
	SHA256:     {Current: "SHA-256"},
	SHA384:     {Current: "SHA-384"},
	SHA512:     {Current: "SHA-512"},
	SHA3_256:   {Current: "SHA3-256"},
	SHA3_384:   {Current: "SHA3-384"},
	SHA3_512:   {Current: "SHA3-512"},
	BLAKE2b256: {Current: "BLAKE2b-256"},
	BLAKE2b384: {Current: "BLAKE2b-384"},
	BLAKE2b512: {Current: "BLAKE2b-512"},
	BLAKE3:     {Current: "BLAKE3"},
})

func (h HashAlgorithm) String() string {
	return HashAlgorithms.String(h)
}

// ExternalReferenceType is the kind of resource an external reference points at.
type ExternalReferenceType int

const (
	UnknownExternalReferenceType ExternalReferenceType = iota
	VCSReference
	IssueTrackerReference
	WebsiteReference
	AdvisoriesReference
	BOMReference
	MailingListReference
	SocialReference
	ChatReference
	DocumentationReference
	SupportReference
	DistributionReference
	LicenseReference
	BuildMetaReference
	BuildSystemReference
	OtherReference
)

// ExternalReferenceTypes is the canonical string table of ExternalReferenceType.
var ExternalReferenceTypes = schema.NewEnum("external reference type", map[ExternalReferenceType]schema.Variant{
	VCSReference:           {Current: "vcs", Legacy: "Vcs"},
	IssueTrackerReference:  {Current: "issue-tracker"},
	WebsiteReference:       {Current: "website", Legacy: "Website"},
	AdvisoriesReference:    {Current: "advisories", Legacy: "Advisories"},
	BOMReference:           {Current: "bom", Legacy: "Bom"},
	MailingListReference:   {Current: "mailing-list"},
	SocialReference:        {Current: "social", Legacy: "Social"},
	ChatReference:          {Current: "chat", Legacy: "Chat"},
	DocumentationReference: {Current: "documentation", Legacy: "Documentation"},
	SupportReference:       {Current: "support", Legacy: "Support"},
	DistributionReference:  {Current: "distribution", Legacy: "Distribution"},
	LicenseReference:       {Current: "license", Legacy: "License"},
	BuildMetaReference:     {Current: "build-meta"},
	BuildSystemReference:   {Current: "build-system"},
	OtherReference:         {Current: "other", Legacy: "Other"},
})

func (e ExternalReferenceType) String() string {
	return ExternalReferenceTypes.String(e)
}

// DataFlow is the direction data travels relative to a service.
type DataFlow int

const (
	UnknownDataFlow DataFlow = iota
	Inbound
	Outbound
	BiDirectional
	UndeterminedFlow
)

// DataFlows is the canonical string table of DataFlow.
var DataFlows = schema.NewEnum("data flow", map[DataFlow]schema.Variant{
	Inbound:          {Current: "inbound"},
	Outbound:         {Current: "outbound"},
	BiDirectional:    {Current: "bi-directional"},
	UndeterminedFlow: {Current: "unknown"},
})

func (d DataFlow) String() string {
	return DataFlows.String(d)
}

// Encoding is the transfer encoding of an attached text payload.
type Encoding int

const (
	NoEncoding Encoding = iota
	Base64
)

// Encodings is the canonical string table of Encoding.
var Encodings = schema.NewEnum("encoding", map[Encoding]schema.Variant{
	Base64: {Current: "base64"},
})

func (e Encoding) String() string {
	return Encodings.String(e)
}

// PatchClassification is the kind of a patch applied to a component.
type PatchClassification int

const (
	UnknownPatchClassification PatchClassification = iota
	UnofficialPatch
	MonkeyPatch
	BackportPatch
	CherryPickPatch
)

// PatchClassifications is the canonical string table of PatchClassification.
var PatchClassifications = schema.NewEnum("patch type", map[PatchClassification]schema.Variant{
	UnofficialPatch: {Current: "unofficial", Legacy: "Unofficial"},
	MonkeyPatch:     {Current: "monkey", Legacy: "Monkey"},
	BackportPatch:   {Current: "backport", Legacy: "Backport"},
	CherryPickPatch: {Current: "cherry-pick", Legacy: "CherryPick"},
})

func (p PatchClassification) String() string {
	return PatchClassifications.String(p)
}

// IssueClassification is the kind of issue a patch resolves.
type IssueClassification int

const (
	UnknownIssueClassification IssueClassification = iota
	DefectIssue
	EnhancementIssue
	SecurityIssue
)

// IssueClassifications is the canonical string table of IssueClassification.
var IssueClassifications = schema.NewEnum("issue type", map[IssueClassification]schema.Variant{
	DefectIssue:      {Current: "defect", Legacy: "Defect"},
	EnhancementIssue: {Current: "enhancement", Legacy: "Enhancement"},
	SecurityIssue:    {Current: "security", Legacy: "Security"},
})

func (i IssueClassification) String() string {
	return IssueClassifications.String(i)
}
