package bom

// Service describes an external API the described software depends on or exposes. Services nest to arbitrary
// depth.
type Service struct {
	BOMRef             string                `cdx:"bom-ref,attr"`
	Provider           *OrganizationalEntity `cdx:"provider"`
	Group              string                `cdx:"group"`
	Name               string                `cdx:"name,required"`
	Version            string                `cdx:"version"`
	Description        string                `cdx:"description"`
	Endpoints          []string              `cdx:"endpoints,xml=endpoints>endpoint"`
	Authenticated      *bool                 `cdx:"authenticated"`
	TrustBoundary      *bool                 `cdx:"x-trust-boundary"`
	Data               []DataClassification  `cdx:"data,xml=data>classification"`
	Licenses           *[]LicenseChoice      `cdx:"licenses,choice,emitempty"`
	ExternalReferences []ExternalReference   `cdx:"externalReferences,xml=externalReferences>reference"`
	Services           []Service             `cdx:"services,xml=services>service"`
}

// DataClassification labels the data exchanged with a service and the direction it flows.
type DataClassification struct {
	Flow           DataFlow `cdx:"flow,attr,required"`
	Classification string   `cdx:"classification,chardata,required"`
}

// Dependency lists the references a component or service (identified by its bom-ref) directly depends on.
type Dependency struct {
	Ref       string   `cdx:"ref,attr,required"`
	DependsOn []string `cdx:"dependsOn,xml=dependency,itemattr=ref"`
}
