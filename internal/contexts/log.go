package contexts

import "strings"

// entrySeparator joins log entries on read. The blank-padded rule renders
// as a markdown thematic break between entries.
const entrySeparator = "\n\n---\n\n"

// logBehavior serves the log base types: append-only documents under
// generated timestamped identifiers. Reads without a name return every
// entry, newest first; a name filter selects existing entries only and
// never generates a new identifier.
type logBehavior struct {
	behavior
}

func (b *logBehavior) Update(_, content string) (string, error) {
	if err := b.requireContent(content); err != nil {
		return "", err
	}
	return b.engine.WriteContext(b.project, b.typeCfg.Name, "", content)
}

func (b *logBehavior) Read(contextName string) (string, error) {
	var names []string
	if contextName != "" {
		names = []string{contextName}
	}
	docs, err := b.engine.GetContext(b.project, b.typeCfg.Name, names)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}
	return strings.Join(parts, entrySeparator), nil
}

func (b *logBehavior) Reset(contextName string) ([]string, error) {
	var names []string
	if contextName != "" {
		names = []string{contextName}
	}
	return b.engine.ClearContext(b.project, b.typeCfg.Name, names)
}
