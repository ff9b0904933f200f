package dataset

// Source directories, relative to the working directory of the analysis.
const (
	OriginalDir = "../original"
	ExternalDir = "../external"
)

// Dataset labels.
const (
	Voyages       = "voyages"
	Beneficiaries = "beneficiaries"
	Contracts     = "contracts"
	DAS           = "das"
	Clusters      = "clusters"
	Ranks         = "ranks"
	Reasons       = "reasons"
)

func init() {
	Register(Descriptor{File: OriginalDir + "/NT00444_SOLDIJBOEKEN.csv", Dir: OriginalDir, Label: Voyages, Format: FormatCSV})
	Register(Descriptor{File: OriginalDir + "/NT00444_BEGUNSTIGDEN.csv", Dir: OriginalDir, Label: Beneficiaries, Format: FormatCSV})
	Register(Descriptor{File: OriginalDir + "/NT00444_OPVARENDEN.csv", Dir: OriginalDir, Label: Contracts, Format: FormatCSV})
	Register(Descriptor{File: ExternalDir + "/das.xlsx", Dir: ExternalDir, Label: DAS, Format: FormatXLSX})
	Register(Descriptor{File: ExternalDir + "/voc_cluster_sub_file.csv.gz", Dir: ExternalDir, Label: Clusters, Format: FormatCSVGz})
	Register(Descriptor{File: ExternalDir + "/rank_categories_updated.csv", Dir: ExternalDir, Label: Ranks, Format: FormatCSV})
	Register(Descriptor{File: ExternalDir + "/reasonsEndService.xlsx", Dir: ExternalDir, Label: Reasons, Format: FormatXLSX})
}
