package constant

const ExportContentType = "text/csv"
