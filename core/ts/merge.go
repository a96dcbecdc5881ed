// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import "slices"

// Merge updates a translated catalog with a freshly extracted template.
//
// Every template message appears in the result, in template order, carrying the
// translation of the matching existing message. Reappearing vanished or
// obsolete translations come back as Unfinished so they get reviewed. Existing
// messages absent from the template are kept at the end of their context as
// Vanished, without locations; untranslated ones are dropped. Neither input is
// modified.
func Merge(existing, template *Catalog) *Catalog {
	out := &Catalog{
		Version:        existing.Version,
		Language:       existing.Language,
		SourceLanguage: existing.SourceLanguage,
		Policy:         existing.Policy,
	}

	if out.Version == "" {
		out.Version = template.Version
	}

	if out.SourceLanguage == "" {
		out.SourceLanguage = template.SourceLanguage
	}

	tag, _ := existing.Tag()
	forms := NumerusCount(tag)

	used := make(map[*Message]bool)
	byName := make(map[string]*Context)

	contextFor := func(name string) *Context {
		if ctx, ok := byName[name]; ok {
			return ctx
		}

		ctx := &Context{Name: name}
		byName[name] = ctx
		out.Contexts = append(out.Contexts, ctx)

		return ctx
	}

	for tctx, tm := range template.All() {
		m := &Message{
			ID:           tm.ID,
			Source:       tm.Source,
			Comment:      tm.Comment,
			ExtraComment: tm.ExtraComment,
			Locations:    slices.Clone(tm.Locations),
			Numerus:      tm.Numerus,
			Status:       Unfinished,
		}

		if old := mergeCandidate(existing.Find(tctx.Name, tm.Source, tm.Comment), used); old != nil {
			used[old] = true
			carryTranslation(m, old)
		}

		for m.Numerus && len(m.NumerusForms) < forms {
			m.NumerusForms = append(m.NumerusForms, "")
		}

		ctx := contextFor(tctx.Name)
		ctx.Messages = append(ctx.Messages, m)
	}

	for ectx, em := range existing.All() {
		if used[em] || !em.translated() {
			continue
		}

		m := *em
		m.Locations = nil

		if m.Status.Current() {
			m.Status = Vanished
		}

		ctx := contextFor(ectx.Name)
		ctx.Messages = append(ctx.Messages, &m)
	}

	return out
}

// mergeCandidate prefers current messages over vanished ones over obsolete ones.
func mergeCandidate(msgs []*Message, used map[*Message]bool) *Message {
	var best *Message

	for _, m := range msgs {
		if used[m] {
			continue
		}

		if best == nil || m.Status < best.Status {
			best = m
		}
	}

	return best
}

func carryTranslation(dst, old *Message) {
	dst.TranslatorComment = old.TranslatorComment
	dst.LengthVariants = slices.Clone(old.LengthVariants)
	dst.Status = old.Status

	if !old.Status.Current() {
		dst.Status = Unfinished
	}

	switch {
	case dst.Numerus && old.Numerus:
		dst.NumerusForms = slices.Clone(old.Forms())
	case dst.Numerus:
		dst.NumerusForms = []string{old.Translation}
		dst.Status = Unfinished
	case old.Numerus:
		dst.Translation = old.Text()
		dst.Status = Unfinished
	default:
		dst.Translation = old.Translation
	}
}
