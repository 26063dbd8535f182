package excel

// indexHeader heads the optional hour index column
const indexHeader = "ID"

// DefaultSheet is the worksheet written when none is configured
const DefaultSheet = "Sheet1"
