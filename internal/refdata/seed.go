package refdata

// Default returns the built-in catalogues. Production deployments can load
// the same tables from an external provider; the engine only sees a
// *Catalogue either way.
func Default() *Catalogue {
	return New(defaultWasteCodes, defaultEWCCodes, defaultCountries, defaultUKNations, defaultRecoveryCodes, defaultDisposalCodes)
}

var defaultWasteCodes = map[string][]WasteCode{
	CodeTypeBaselAnnexIX: {
		{Code: "B1010", Description: "Metal and metal-alloy wastes in metallic, non-dispersible form"},
		{Code: "B1020", Description: "Clean, uncontaminated metal scrap"},
		{Code: "B1030", Description: "Refractory metals containing residues"},
		{Code: "B1031", Description: "Molybdenum, tungsten, titanium, tantalum, niobium and rhenium metal"},
		{Code: "B1040", Description: "Scrap assemblies from electrical power generation"},
		{Code: "B1050", Description: "Mixed non-ferrous metal, heavy fraction scrap"},
		{Code: "B1070", Description: "Waste of copper and copper alloys in dispersible form"},
		{Code: "B1100", Description: "Metal-bearing wastes arising from melting, smelting and refining of metals"},
		{Code: "B2010", Description: "Mining waste in non-dispersible form"},
		{Code: "B2020", Description: "Glass waste in non-dispersible form"},
		{Code: "B3020", Description: "Paper, paperboard and paper product wastes"},
		{Code: "B3026", Description: "Waste from the pre-treatment of composite packaging for liquids"},
		{Code: "B3040", Description: "Rubber wastes"},
		{Code: "B3080", Description: "Waste parings and scrap of rubber"},
	},
	CodeTypeOECD: {
		{Code: "GB040", Description: "Slags from precious metals and copper processing"},
		{Code: "GC010", Description: "Electrical assemblies consisting only of metals or alloys"},
		{Code: "GC020", Description: "Electronic scrap"},
		{Code: "GC030", Description: "Vessels and other floating structures for breaking up"},
		{Code: "GC050", Description: "Spent fluid catalytic cracking catalysts"},
		{Code: "GE020", Description: "Glass fibre waste"},
		{Code: "GF010", Description: "Ceramic wastes which have been fired after shaping"},
	},
	CodeTypeAnnexIIIA: {
		{Code: "B1010 and B1050", Description: "Mixtures of metal wastes and heavy fraction scrap"},
		{Code: "B1010 and B1070", Description: "Mixtures of metal wastes and dispersible copper waste"},
		{Code: "B3040 and B3080", Description: "Mixtures of rubber wastes"},
		{Code: "GB040 and B1100", Description: "Mixtures of slags and metal-bearing wastes"},
		{Code: "GB040, B1070 and B1100", Description: "Mixtures of slags, copper waste and metal-bearing wastes"},
	},
	CodeTypeAnnexIIIB: {
		{Code: "BEU04", Description: "Composite packaging consisting of mainly paper and some plastic"},
		{Code: "BEU05", Description: "Clean biodegradable waste from agriculture and forestry"},
	},
}

var defaultEWCCodes = []EWCCode{
	{Code: "010101", Description: "Wastes from mineral metalliferous excavation"},
	{Code: "010102", Description: "Wastes from mineral non-metalliferous excavation"},
	{Code: "010304", Description: "Acid-generating tailings from processing of sulphide ore"},
	{Code: "010306", Description: "Tailings other than those mentioned in 01 03 04 and 01 03 05"},
	{Code: "010308", Description: "Dusty and powdery wastes other than those mentioned in 01 03 07"},
	{Code: "010309", Description: "Red mud from alumina production"},
	{Code: "010413", Description: "Wastes from stone cutting and sawing"},
	{Code: "020101", Description: "Sludges from washing and cleaning"},
	{Code: "020110", Description: "Waste metal"},
	{Code: "150101", Description: "Paper and cardboard packaging"},
	{Code: "150102", Description: "Plastic packaging"},
	{Code: "150104", Description: "Metallic packaging"},
	{Code: "160117", Description: "Ferrous metal"},
	{Code: "170402", Description: "Aluminium"},
	{Code: "170405", Description: "Iron and steel"},
	{Code: "191001", Description: "Iron and steel waste from shredding of metal-containing waste"},
	{Code: "191202", Description: "Ferrous metal from mechanical treatment of waste"},
	{Code: "200101", Description: "Paper and cardboard, separately collected"},
}

var defaultCountries = []Country{
	{Name: "Afghanistan [AF]"},
	{Name: "Albania [AL]"},
	{Name: "Austria [AT]"},
	{Name: "Belgium [BE]"},
	{Name: "Bulgaria [BG]"},
	{Name: "Denmark [DK]"},
	{Name: "Equatorial Guinea [GQ]"},
	{Name: "France [FR]"},
	{Name: "Germany [DE]"},
	{Name: "Guinea [GN]"},
	{Name: "Guinea-Bissau [GW]"},
	{Name: "Ireland [IE]"},
	{Name: "Italy [IT]"},
	{Name: "Netherlands [NL]"},
	{Name: "Norway [NO]"},
	{Name: "Papua New Guinea [PG]"},
	{Name: "Poland [PL]"},
	{Name: "Portugal [PT]"},
	{Name: "Spain [ES]"},
	{Name: "Sweden [SE]"},
	{Name: "Switzerland [CH]"},
	{Name: "Turkey [TR]"},
}

var defaultUKNations = []Country{
	{Name: "United Kingdom (England) [GB-ENG]"},
	{Name: "United Kingdom (Scotland) [GB-SCT]"},
	{Name: "United Kingdom (Wales) [GB-WLS]"},
	{Name: "United Kingdom (Northern Ireland) [GB-NIR]"},
}

var defaultRecoveryCodes = []RecoveryCode{
	{Code: "R1", Description: "Use principally as a fuel or other means to generate energy"},
	{Code: "R2", Description: "Solvent reclamation/regeneration"},
	{Code: "R3", Description: "Recycling/reclamation of organic substances not used as solvents"},
	{Code: "R4", Description: "Recycling/reclamation of metals and metal compounds"},
	{Code: "R5", Description: "Recycling/reclamation of other inorganic materials"},
	{Code: "R9", Description: "Oil re-refining or other reuses of oil"},
	{Code: "R11", Description: "Use of wastes obtained from any of the operations numbered R1 to R10"},
	{Code: "R12", Description: "Exchange of wastes for submission to any of the operations numbered R1 to R11"},
	{Code: "R13", Description: "Storage of wastes pending any of the operations numbered R1 to R12"},
}

var defaultDisposalCodes = []RecoveryCode{
	{Code: "D1", Description: "Deposit into or onto land"},
	{Code: "D2", Description: "Land treatment"},
	{Code: "D3", Description: "Deep injection"},
	{Code: "D8", Description: "Biological treatment not specified elsewhere"},
	{Code: "D9", Description: "Physico-chemical treatment not specified elsewhere"},
	{Code: "D10", Description: "Incineration on land"},
	{Code: "D14", Description: "Repackaging prior to submission to any of the operations numbered D1 to D13"},
	{Code: "D15", Description: "Storage pending any of the operations numbered D1 to D14"},
}
