package main

// localized display labels for well-known field tags (e.g. 245 -> "Title")

func (c *clientContext) localizedTagLabel(svc *serviceContext, tag string) string {
	xid := svc.maps.tagLabelXIDs[tag]

	if xid == "" {
		return ""
	}

	return c.localize(xid)
}

func (c *clientContext) localizedTagLabels(svc *serviceContext) TagLabels {
	var labels TagLabels

	for _, tag := range svc.maps.tagOrder {
		labels.Tags = append(labels.Tags, TagLabel{Tag: tag, Label: c.localizedTagLabel(svc, tag)})
	}

	return labels
}
