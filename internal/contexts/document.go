package contexts

// documentBehavior serves the single-document base types. The type holds
// exactly one document named after the type itself; caller-supplied context
// names are ignored for every operation.
type documentBehavior struct {
	behavior
}

// Update replaces the document. The templated variant archives the current
// document first, so every accepted revision survives under archive/.
func (b *documentBehavior) Update(_, content string) (string, error) {
	if err := b.requireContent(content); err != nil {
		return "", err
	}
	if b.typeCfg.BaseType.IsTemplated() {
		if _, err := b.engine.ClearContext(b.project, b.typeCfg.Name, []string{b.typeCfg.Name}); err != nil {
			return "", err
		}
	}
	return b.engine.WriteContext(b.project, b.typeCfg.Name, "", content)
}

// Read returns the document's content; a missing document is a not-found
// failure rather than empty content.
func (b *documentBehavior) Read(_ string) (string, error) {
	docs, err := b.engine.GetContext(b.project, b.typeCfg.Name, []string{b.typeCfg.Name})
	if err != nil {
		return "", err
	}
	return docs[0].Content, nil
}

// Reset archives the document; resetting an absent document succeeds.
func (b *documentBehavior) Reset(_ string) ([]string, error) {
	return b.engine.ClearContext(b.project, b.typeCfg.Name, []string{b.typeCfg.Name})
}
