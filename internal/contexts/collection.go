package contexts

import "github.com/mrkplt/shared-project-context-sub000/internal/identity"

// collectionBehavior serves the collection base types: a named set of
// documents keyed by caller-supplied context names. Every operation
// requires a name; there is no "whole collection" read or reset at this
// level.
type collectionBehavior struct {
	behavior
}

func (b *collectionBehavior) Update(contextName, content string) (string, error) {
	if err := b.requireContent(content); err != nil {
		return "", err
	}
	return b.engine.WriteContext(b.project, b.typeCfg.Name, contextName, content)
}

func (b *collectionBehavior) Read(contextName string) (string, error) {
	if err := identity.RequireName(b.typeCfg.BaseType, contextName); err != nil {
		return "", err
	}
	docs, err := b.engine.GetContext(b.project, b.typeCfg.Name, []string{contextName})
	if err != nil {
		return "", err
	}
	return docs[0].Content, nil
}

func (b *collectionBehavior) Reset(contextName string) ([]string, error) {
	if err := identity.RequireName(b.typeCfg.BaseType, contextName); err != nil {
		return nil, err
	}
	return b.engine.ClearContext(b.project, b.typeCfg.Name, []string{contextName})
}
