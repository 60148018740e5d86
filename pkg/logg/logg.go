package logg

const (
	Layer     = "layer"
	Operation = "operation"
	Selector  = "selector"
	URL       = "url"
	ElementID = "element_id"
	Direction = "direction"
	Platform  = "platform"
)
