package config

type WorkerKeyStruct struct {
	FacetRefreshQueue string
}

var WorkerKey = &WorkerKeyStruct{
	FacetRefreshQueue: "facet_refresh_queue",
}
