package pricing

// Selection is the transient target chosen on a worksheet. Ids below the
// chosen target level are cosmetic and cleared by the worksheet whenever the
// target level or an upstream id changes.
type Selection struct {
	Target    Target `json:"target"`
	BrandID   string `json:"brandId,omitempty"`
	ModelID   string `json:"modelId,omitempty"`
	VersionID string `json:"versionId,omitempty"`
}

// Resolve returns the single catalog node whose pricing attributes apply to
// the selection, or nil when nothing matches.
//
// The most specific id wins: a set versionId is looked up in version lists,
// else a set modelId in model lists, else brandId in the brand list. The
// search covers the list belonging to the selection's own parent first and
// then falls back to every cached list, because a record opened for edit may
// show derived pricing before its full ancestor chain has been reloaded into
// the current lists. When the same id exists in two cached lists the most
// recently fetched list wins; the fallback order is deterministic.
func Resolve(sel Selection, snap Snapshot) *Node {
	if sel.VersionID != "" {
		return findNode(sel.VersionID, sel.ModelID, snap.VersionsByModel, snap.VersionOrder)
	}
	if sel.ModelID != "" {
		return findNode(sel.ModelID, sel.BrandID, snap.ModelsByBrand, snap.ModelOrder)
	}
	if sel.BrandID != "" {
		for i := range snap.Brands {
			if snap.Brands[i].ID == sel.BrandID {
				return &snap.Brands[i]
			}
		}
	}
	return nil
}

// findNode searches the list cached for currentParent first, then every
// other cached list from most recently fetched to oldest.
func findNode(nodeID, currentParent string, lists map[string][]Node, order []string) *Node {
	if currentParent != "" {
		if n := findIn(lists[currentParent], nodeID); n != nil {
			return n
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		parent := order[i]
		if parent == currentParent {
			continue
		}
		if n := findIn(lists[parent], nodeID); n != nil {
			return n
		}
	}
	return nil
}

func findIn(nodes []Node, nodeID string) *Node {
	for i := range nodes {
		if nodes[i].ID == nodeID {
			return &nodes[i]
		}
	}
	return nil
}
