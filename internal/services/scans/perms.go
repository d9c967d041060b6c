package scans

// StaticPermissions — проверка возможностей по фиксированному списку из конфига.
type StaticPermissions map[string]struct{}

func NewStaticPermissions(capabilities []string) StaticPermissions {
	p := make(StaticPermissions, len(capabilities))
	for _, c := range capabilities {
		p[c] = struct{}{}
	}
	return p
}

func (p StaticPermissions) Has(capability string) bool {
	_, ok := p[capability]
	return ok
}
