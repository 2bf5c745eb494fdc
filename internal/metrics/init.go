package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	classes := []string{"text", "audio", "video", "octet-stream", "other"}
	for _, c := range classes {
		ParseTotal.WithLabelValues(c, "success")
		ParseTotal.WithLabelValues(c, "skipped")
		ParseTotal.WithLabelValues(c, "error")
		ParseDuration.WithLabelValues(c)
	}

	for _, t := range []string{"frame", "placeholder"} {
		ThumbnailGenerationsTotal.WithLabelValues(t, "success")
		ThumbnailGenerationsTotal.WithLabelValues(t, "error")
		ThumbnailGenerationDuration.WithLabelValues(t)
	}

	for _, s := range []string{"success", "error"} {
		RegistryAppendsTotal.WithLabelValues(s)
	}
	for _, r := range []string{"matched", "synthesized"} {
		MimeCorrectionsTotal.WithLabelValues(r)
	}

	for _, op := range []string{"initialize_schema", "save_document", "get_document",
		"list_documents", "search_documents", "delete_document", "count_documents"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
