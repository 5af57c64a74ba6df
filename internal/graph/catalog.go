package graph

import "fmt"

// Catalog is the single immutable registry of parameterized Cypher queries
// (component B), grouped by entity family. It is the only place query text
// lives; repositories invoke entries by name with parameters. Relationship
// naming follows spec §3 with one deliberate unification: the spec uses
// both "SEGMENTATION_OF" (generic "attached to its manifestation") and
// "ANNOTATION_OF" (§4.I's peer lookup) for the same structural edge between
// an annotation-layer node (Segmentation) and its Manifestation; this
// catalog names that edge SEGMENTATION_OF everywhere, including in the
// traversal peer lookup, since both spec passages describe one edge type.
type Catalog struct {
	Languages      map[string]string
	Persons        map[string]string
	Nomens         map[string]string
	Expressions    map[string]string
	Manifestations map[string]string
	Segmentations  map[string]string
	Segments       map[string]string
	Alignments     map[string]string
	References     map[string]string
	Notes          map[string]string
	Bibliography   map[string]string
	Categories     map[string]string
	Applications   map[string]string
	ApiKeys        map[string]string
	AI             map[string]string
}

// primaryNomenFragment builds the subquery fragment that collects a node's
// primary Nomen localizations into a list comprehension, mirroring
// original_source/functions/neo4j_queries.py's _primary_nomen combinator.
func primaryNomenFragment(label, relationship string) string {
	return fmt.Sprintf(`[(%s)-[:%s]->(%s_n:Nomen)-[:HAS_LOCALIZATION]->(%s_lt:LocalizedText)-[:HAS_LANGUAGE]->(%s_l:Language) | {
		language: %s_l.code, text: %s_lt.text
	}]`, label, relationship, label, label, label, label, label)
}

// alternativeNomenFragment builds the fragment collecting each alternative
// Nomen's localizations as a list of lists, one inner list per alternative.
func alternativeNomenFragment(label, relationship string) string {
	return fmt.Sprintf(`[(%s)-[:%s]->(:Nomen)<-[:ALTERNATIVE_OF]-(%s_an:Nomen) | [
		(%s_an)-[:HAS_LOCALIZATION]->(%s_at:LocalizedText)-[:HAS_LANGUAGE]->(%s_al:Language) | {
			language: %s_al.code, text: %s_at.text
		}
	]]`, label, relationship, label, label, label, label, label, label)
}

// NewCatalog builds the catalog once at process start; it is never mutated.
func NewCatalog() *Catalog {
	c := &Catalog{
		Languages:      map[string]string{},
		Persons:        map[string]string{},
		Nomens:         map[string]string{},
		Expressions:    map[string]string{},
		Manifestations: map[string]string{},
		Segmentations:  map[string]string{},
		Segments:       map[string]string{},
		Alignments:     map[string]string{},
		References:     map[string]string{},
		Notes:          map[string]string{},
		Bibliography:   map[string]string{},
		Categories:     map[string]string{},
		Applications:   map[string]string{},
		ApiKeys:        map[string]string{},
		AI:             map[string]string{},
	}

	c.Languages["exists"] = `MATCH (l:Language {code: $code}) RETURN l.code AS code`
	c.Languages["exists_batch"] = `
		UNWIND $codes AS code
		OPTIONAL MATCH (l:Language {code: code})
		RETURN code, l IS NOT NULL AS found`

	c.Persons["exists_batch"] = `
		UNWIND $ids AS id
		OPTIONAL MATCH (p:Person {id: id})
		RETURN id, p IS NOT NULL AS found`
	c.Persons["exists_by_bdrc_batch"] = `
		UNWIND $bdrc_ids AS bdrc
		OPTIONAL MATCH (p:Person {bdrc: bdrc})
		RETURN bdrc, p IS NOT NULL AS found`
	c.Persons["fetch_by_id"] = fmt.Sprintf(`
		MATCH (person:Person {id: $id})
		RETURN {
			id: person.id, bdrc: person.bdrc, wiki: person.wiki,
			name: %s, alt_names: %s
		} AS person`,
		primaryNomenFragment("person", "HAS_NAME"), alternativeNomenFragment("person", "HAS_NAME"))
	c.Persons["fetch_all"] = fmt.Sprintf(`
		MATCH (person:Person)
		RETURN {
			id: person.id, bdrc: person.bdrc, wiki: person.wiki,
			name: %s, alt_names: %s
		} AS person
		ORDER BY person.id
		SKIP $offset LIMIT $limit`,
		primaryNomenFragment("person", "HAS_NAME"), alternativeNomenFragment("person", "HAS_NAME"))
	c.Persons["create"] = `
		MATCH (n:Nomen {id: $primary_nomen_id})
		CREATE (p:Person {id: $id, bdrc: $bdrc, wiki: $wiki})
		CREATE (p)-[:HAS_NAME]->(n)
		RETURN p.id AS person_id`
	c.Persons["delete"] = `
		MATCH (p:Person {id: $id})
		DETACH DELETE p`

	c.Nomens["create"] = `
		OPTIONAL MATCH (primary:Nomen {id: $primary_nomen_id})
		CREATE (n:Nomen {id: $nomen_id})
		WITH n, primary
		FOREACH (_ IN CASE WHEN primary IS NOT NULL THEN [1] ELSE [] END |
			CREATE (n)-[:ALTERNATIVE_OF]->(primary)
		)
		WITH n
		UNWIND $localized_texts AS lt
		MERGE (l:Language {code: lt.base_lang_code})
		CREATE (n)-[:HAS_LOCALIZATION]->(loc:LocalizedText {text: lt.text})
			-[:HAS_LANGUAGE {bcp47: lt.bcp47_tag}]->(l)
		RETURN n.id AS nomen_id`
	c.Nomens["merge_localizations"] = `
		MATCH (n:Nomen {id: $nomen_id})
		OPTIONAL MATCH (n)-[:HAS_LOCALIZATION]->(old:LocalizedText)-[:HAS_LANGUAGE]->(l:Language {code: $base_lang_code})
		DETACH DELETE old
		WITH n
		MERGE (lang:Language {code: $base_lang_code})
		CREATE (n)-[:HAS_LOCALIZATION]->(:LocalizedText {text: $text})-[:HAS_LANGUAGE {bcp47: $bcp47_tag}]->(lang)`
	c.Nomens["delete_with_alternatives"] = `
		MATCH (n:Nomen {id: $nomen_id})
		OPTIONAL MATCH (alt:Nomen)-[:ALTERNATIVE_OF]->(n)
		OPTIONAL MATCH (alt)-[:HAS_LOCALIZATION]->(alt_lt:LocalizedText)
		OPTIONAL MATCH (n)-[:HAS_LOCALIZATION]->(lt:LocalizedText)
		DETACH DELETE alt_lt, alt, lt, n`

	c.Expressions["exists"] = `MATCH (e:Expression {id: $id}) RETURN e.id AS id`
	c.Expressions["fetch_by_external"] = `
		MATCH (e:Expression) WHERE e.bdrc = $external_id OR e.wiki = $external_id
		RETURN e.id AS id`
	c.Expressions["title_exists"] = `
		MATCH (e:Expression)-[:HAS_TITLE]->(:Nomen)-[:HAS_LOCALIZATION]->(lt:LocalizedText)-[:HAS_LANGUAGE]->(l:Language {code: $language})
		WHERE toLower(lt.text) = toLower($text) AND ($exclude_id IS NULL OR e.id <> $exclude_id)
		RETURN e.id AS id LIMIT 1`
	c.Expressions["create"] = `
		CREATE (w:Work {id: $work_id})
		CREATE (e:Expression {
			id: $id, bdrc: $bdrc, wiki: $wiki, type: $type,
			language: $language, bcp47: $bcp47, date: $date,
			license: $license, copyright: $copyright, category_id: $category_id
		})
		CREATE (e)-[:EXPRESSION_OF {original: $is_original}]->(w)
		WITH e
		MATCH (t:Nomen {id: $title_nomen_id})
		CREATE (e)-[:HAS_TITLE]->(t)
		WITH e
		MATCH (lang:Language {code: $language})
		CREATE (e)-[:HAS_LANGUAGE {bcp47: $bcp47}]->(lang)
		RETURN e.id AS id, w.id AS work_id`
	c.Expressions["attach_contributor"] = `
		MATCH (e:Expression {id: $id}), (p {id: $person_id})
		CREATE (e)-[:CONTRIBUTED_BY {role: $role}]->(p)`
	c.Expressions["fetch_by_id"] = fmt.Sprintf(`
		MATCH (e:Expression {id: $id})-[:EXPRESSION_OF]->(w:Work)
		OPTIONAL MATCH (e)-[tgt_rel:COMMENTARY_OF|TRANSLATION_OF]->(target)
		OPTIONAL MATCH (e)-[contrib:CONTRIBUTED_BY]->(person)
		WITH e, w, target, collect(DISTINCT {person_id: person.id, role: contrib.role}) AS contributions
		RETURN {
			id: e.id, work_id: w.id, bdrc: e.bdrc, wiki: e.wiki, type: e.type,
			language: e.language, bcp47: e.bcp47, date: e.date,
			license: e.license, copyright: e.copyright, category_id: e.category_id,
			target: target.id, contributions: contributions,
			title: %s, alt_titles: %s
		} AS expression`,
		primaryNomenFragment("e", "HAS_TITLE"), alternativeNomenFragment("e", "HAS_TITLE"))
	c.Expressions["fetch_all"] = `
		MATCH (e:Expression)
		WHERE ($type IS NULL OR e.type = $type)
		  AND ($language IS NULL OR e.language = $language)
		RETURN e.id AS id
		ORDER BY e.id
		SKIP $offset LIMIT $limit`
	c.Expressions["relations_all"] = `
		MATCH (e:Expression)
		OPTIONAL MATCH (e)-[:COMMENTARY_OF|TRANSLATION_OF]->(target)
		RETURN e.id AS id, collect(target.id) AS relations`
	c.Expressions["relations_by_id"] = `
		MATCH (e:Expression {id: $id})
		OPTIONAL MATCH (e)-[:COMMENTARY_OF|TRANSLATION_OF]->(target)
		RETURN e.id AS id, collect(target.id) AS relations`
	c.Expressions["siblings_of_root"] = `
		MATCH (sibling:Expression)-[:COMMENTARY_OF|TRANSLATION_OF]->(root {id: $root_id})
		WHERE sibling.id <> $exclude_id AND ($type IS NULL OR sibling.type = $type)
		RETURN sibling.id AS id`

	c.Manifestations["exists"] = `MATCH (m:Manifestation {id: $id}) RETURN m.id AS id`
	c.Manifestations["critical_exists_for_expression"] = `
		MATCH (m:Manifestation {type: 'critical'})-[:MANIFESTATION_OF]->(e:Expression {id: $expression_id})
		RETURN m.id AS id`
	c.Manifestations["create"] = `
		MATCH (e:Expression {id: $expression_id})
		CREATE (m:Manifestation {
			id: $id, bdrc: $bdrc, wiki: $wiki, type: $type,
			source: $source, colophon: $colophon
		})
		CREATE (m)-[:MANIFESTATION_OF]->(e)
		RETURN m.id AS id`
	c.Manifestations["attach_incipit"] = `
		MATCH (m:Manifestation {id: $id}), (n:Nomen {id: $nomen_id})
		CREATE (m)-[:HAS_INCIPIT_TITLE]->(n)`
	c.Manifestations["fetch_by_id"] = fmt.Sprintf(`
		MATCH (m:Manifestation {id: $id})-[:MANIFESTATION_OF]->(e:Expression)
		RETURN {
			id: m.id, expression_id: e.id, bdrc: m.bdrc, wiki: m.wiki, type: m.type,
			source: m.source, colophon: m.colophon,
			incipit_title: %s
		} AS manifestation`,
		primaryNomenFragment("m", "HAS_INCIPIT_TITLE"))
	c.Manifestations["fetch_all_by_expression"] = `
		MATCH (m:Manifestation)-[:MANIFESTATION_OF]->(e:Expression {id: $expression_id})
		WHERE ($type IS NULL OR m.type = $type)
		RETURN m.id AS id
		ORDER BY m.id`
	c.Manifestations["update_scalars"] = `
		MATCH (m:Manifestation {id: $id})
		SET m.bdrc = $bdrc, m.wiki = $wiki, m.source = $source, m.colophon = $colophon`
	c.Manifestations["detach_incipit_and_contributors"] = `
		MATCH (m:Manifestation {id: $id})
		OPTIONAL MATCH (m)-[r:HAS_INCIPIT_TITLE]->(n:Nomen)
		OPTIONAL MATCH (n)<-[alt_r:ALTERNATIVE_OF]-(alt:Nomen)
		OPTIONAL MATCH (n)-[:HAS_LOCALIZATION]->(lt:LocalizedText)
		OPTIONAL MATCH (alt)-[:HAS_LOCALIZATION]->(alt_lt:LocalizedText)
		DETACH DELETE lt, alt_lt, alt, n`
	c.Manifestations["segmentations_of"] = `
		MATCH (s:Segmentation)-[:SEGMENTATION_OF]->(m:Manifestation {id: $id})
		RETURN s.id AS id, s.kind AS kind, s.peer_id AS peer_id`
	c.Manifestations["notes_of"] = `MATCH (n:Note)-[:NOTE_OF]->(m:Manifestation {id: $id}) RETURN n.id AS id`
	c.Manifestations["bibliography_of"] = `MATCH (b:BibliographicMetadata)-[:BIBLIOGRAPHY_OF]->(m:Manifestation {id: $id}) RETURN b.id AS id`
	c.Manifestations["length_of_base_text"] = `` // resolved via blob store, not the graph

	c.Segmentations["create"] = `
		MATCH (m:Manifestation {id: $manifestation_id})
		CREATE (s:Segmentation {id: $id, kind: $kind, peer_id: $peer_id})
		CREATE (s)-[:SEGMENTATION_OF]->(m)
		RETURN s.id AS id`
	c.Segmentations["set_peer"] = `
		MATCH (s:Segmentation {id: $id}) SET s.peer_id = $peer_id`
	c.Segmentations["exists_of_kind"] = `
		MATCH (s:Segmentation {kind: $kind})-[:SEGMENTATION_OF]->(m:Manifestation {id: $manifestation_id})
		RETURN s.id AS id`
	c.Segmentations["fetch_by_id"] = `
		MATCH (s:Segmentation {id: $id})-[:SEGMENTATION_OF]->(m:Manifestation)
		RETURN s.id AS id, s.kind AS kind, s.peer_id AS peer_id, m.id AS manifestation_id`
	c.Segmentations["delete_cascade"] = `
		MATCH (s:Segmentation {id: $id})
		OPTIONAL MATCH (seg:Segment)-[:SEGMENT_OF]->(s)
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(seg)
		OPTIONAL MATCH (seg)-[:HAS_REFERENCE]->(ref:Reference)
		DETACH DELETE span, ref, seg, s`
	c.Segmentations["delete_alignment_pair"] = `
		MATCH (a1:Segmentation {id: $id_1}), (a2:Segmentation {id: $id_2})
		OPTIONAL MATCH (seg1:Segment)-[:SEGMENT_OF]->(a1)
		OPTIONAL MATCH (seg2:Segment)-[:SEGMENT_OF]->(a2)
		OPTIONAL MATCH (span1:Span)-[:SPAN_OF]->(seg1)
		OPTIONAL MATCH (span2:Span)-[:SPAN_OF]->(seg2)
		DETACH DELETE span1, span2, seg1, seg2, a1, a2`

	c.Segments["create_batch"] = `
		MATCH (s:Segmentation {id: $segmentation_id})
		UNWIND $segments AS seg
		CREATE (segment:Segment {id: seg.id})
		CREATE (segment)-[:SEGMENT_OF]->(s)
		WITH segment, seg.spans AS spans
		UNWIND spans AS sp
		CREATE (span:Span {start: sp.start, end: sp.end})
		CREATE (span)-[:SPAN_OF]->(segment)`
	c.Segments["create_reference_batch"] = `
		UNWIND $references AS r
		MATCH (segment:Segment {id: r.segment_id})
		CREATE (ref:Reference {id: r.reference_id, name: r.label})
		CREATE (segment)-[:HAS_REFERENCE]->(ref)`
	c.Segments["fetch_by_segmentation"] = `
		MATCH (segment:Segment)-[:SEGMENT_OF]->(:Segmentation {id: $segmentation_id})
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(segment)
		OPTIONAL MATCH (segment)-[:HAS_REFERENCE]->(ref:Reference)
		WITH segment, ref, collect({start: span.start, end: span.end}) AS spans
		RETURN segment.id AS id, spans, ref.name AS reference`
	c.Segments["overlapping"] = `
		MATCH (segment:Segment)-[:SEGMENT_OF]->(:Segmentation {id: $segmentation_id})
		MATCH (span:Span)-[:SPAN_OF]->(segment)
		WHERE span.start < $end AND span.end > $start
		RETURN DISTINCT segment.id AS id`
	c.Segments["overlapping_with_spans"] = `
		MATCH (segment:Segment)-[:SEGMENT_OF]->(:Segmentation {id: $segmentation_id})
		MATCH (allspans:Span)-[:SPAN_OF]->(segment)
		WITH segment, collect({start: allspans.start, end: allspans.end}) AS spans
		WHERE any(sp IN spans WHERE sp.start < $end AND sp.end > $start)
		RETURN segment.id AS id, spans`
	c.Segments["spans_of_batch"] = `
		UNWIND $segment_ids AS sid
		MATCH (segment:Segment {id: sid})
		MATCH (span:Span)-[:SPAN_OF]->(segment)
		RETURN segment.id AS id, collect({start: span.start, end: span.end}) AS spans`

	c.Alignments["create_edges_batch"] = `
		UNWIND $edges AS e
		MATCH (source:Segment {id: e.source_id})
		MATCH (target:Segment {id: e.target_id})
		CREATE (source)-[:ALIGNED_TO]->(target)`
	c.Alignments["pairs_for_manifestation"] = `
		MATCH (a1:Segmentation {kind: 'alignment'})-[:SEGMENTATION_OF]->(m:Manifestation {id: $manifestation_id})
		WHERE a1.peer_id IS NOT NULL
		RETURN a1.id AS source_segmentation_id, a1.peer_id AS target_segmentation_id`
	c.Alignments["peer_manifestation"] = `
		MATCH (a2:Segmentation {id: $segmentation_id})-[:SEGMENTATION_OF]->(m:Manifestation)
		RETURN m.id AS manifestation_id`
	c.Alignments["targets_for_sources"] = `
		UNWIND $source_segment_ids AS sid
		MATCH (source:Segment {id: sid})-[:ALIGNED_TO]->(target:Segment)
		MATCH (tspan:Span)-[:SPAN_OF]->(target)
		RETURN DISTINCT target.id AS target_id, collect(DISTINCT {start: tspan.start, end: tspan.end}) AS spans`
	c.Alignments["indices_for_source"] = `
		MATCH (source:Segment {id: $source_id})-[:ALIGNED_TO]->(target:Segment)
		RETURN target.id AS target_id`

	c.References["create_batch"] = c.Segments["create_reference_batch"]

	c.Notes["create_batch"] = `
		MATCH (m:Manifestation {id: $manifestation_id})
		MATCH (nt:NoteType {name: $note_type})
		UNWIND $notes AS item
		CREATE (n:Note {id: item.id})
		CREATE (n)-[:NOTE_OF]->(m)
		CREATE (n)-[:HAS_TYPE]->(nt)
		WITH n, item.spans AS spans
		UNWIND spans AS sp
		CREATE (span:Span {start: sp.start, end: sp.end})
		CREATE (span)-[:SPAN_OF]->(n)`
	c.Notes["fetch_by_manifestation"] = `
		MATCH (n:Note)-[:NOTE_OF]->(m:Manifestation {id: $manifestation_id})
		MATCH (n)-[:HAS_TYPE]->(nt:NoteType)
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(n)
		WITH n, nt, collect({start: span.start, end: span.end}) AS spans
		RETURN n.id AS id, nt.name AS note_type, spans`
	c.Notes["delete"] = `
		MATCH (n:Note {id: $id})
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(n)
		DETACH DELETE span, n`
	c.Notes["delete_all_for_manifestation"] = `
		MATCH (n:Note)-[:NOTE_OF]->(m:Manifestation {id: $manifestation_id})
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(n)
		DETACH DELETE span, n`
	c.Notes["relocate_affected"] = `
		MATCH (n:Note)-[:NOTE_OF]->(m:Manifestation {id: $manifestation_id})
		WHERE ($exclude_id IS NULL OR n.id <> $exclude_id)
		MATCH (span:Span)-[:SPAN_OF]->(n)
		RETURN n.id AS owner_id, 'Note' AS owner_label, span.start AS start, span.end AS end`

	c.Bibliography["create_batch"] = `
		MATCH (m:Manifestation {id: $manifestation_id})
		MATCH (bt:BibliographyType {name: $biblio_type})
		UNWIND $items AS item
		CREATE (b:BibliographicMetadata {id: item.id})
		CREATE (b)-[:BIBLIOGRAPHY_OF]->(m)
		CREATE (b)-[:HAS_TYPE]->(bt)
		WITH b, item.spans AS spans
		UNWIND spans AS sp
		CREATE (span:Span {start: sp.start, end: sp.end})
		CREATE (span)-[:SPAN_OF]->(b)`
	c.Bibliography["fetch_by_manifestation"] = `
		MATCH (b:BibliographicMetadata)-[:BIBLIOGRAPHY_OF]->(m:Manifestation {id: $manifestation_id})
		MATCH (b)-[:HAS_TYPE]->(bt:BibliographyType)
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(b)
		WITH b, bt, collect({start: span.start, end: span.end}) AS spans
		RETURN b.id AS id, bt.name AS biblio_type, spans`
	c.Bibliography["delete"] = `
		MATCH (b:BibliographicMetadata {id: $id})
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(b)
		DETACH DELETE span, b`
	c.Bibliography["delete_all_for_manifestation"] = `
		MATCH (b:BibliographicMetadata)-[:BIBLIOGRAPHY_OF]->(m:Manifestation {id: $manifestation_id})
		OPTIONAL MATCH (span:Span)-[:SPAN_OF]->(b)
		DETACH DELETE span, b`
	c.Bibliography["relocate_affected"] = `
		MATCH (b:BibliographicMetadata)-[:BIBLIOGRAPHY_OF]->(m:Manifestation {id: $manifestation_id})
		WHERE ($exclude_id IS NULL OR b.id <> $exclude_id)
		MATCH (span:Span)-[:SPAN_OF]->(b)
		RETURN b.id AS owner_id, 'BibliographicMetadata' AS owner_label, span.start AS start, span.end AS end`

	c.Categories["exists"] = `MATCH (c:Category {id: $id}) RETURN c.id AS id`
	c.Categories["title_exists_for_siblings"] = `
		MATCH (c:Category {application: $application})
		WHERE ($parent_id IS NULL AND NOT (c)-[:HAS_PARENT]->(:Category))
		   OR (c)-[:HAS_PARENT]->(:Category {id: $parent_id})
		MATCH (c)-[:HAS_TITLE]->(:Nomen)-[:HAS_LOCALIZATION]->(lt:LocalizedText)-[:HAS_LANGUAGE]->(l:Language {code: $language})
		WHERE toLower(lt.text) = toLower($text)
		RETURN c.id AS id LIMIT 1`
	c.Categories["create"] = `
		CREATE (c:Category {id: $id, application: $application})
		WITH c
		MATCH (n:Nomen {id: $nomen_id})
		CREATE (c)-[:HAS_TITLE]->(n)
		WITH c
		OPTIONAL MATCH (parent:Category {id: $parent_id})
		FOREACH (_ IN CASE WHEN parent IS NOT NULL THEN [1] ELSE [] END |
			CREATE (c)-[:HAS_PARENT]->(parent)
		)
		RETURN c.id AS id`
	c.Categories["get_all"] = fmt.Sprintf(`
		MATCH (c:Category {application: $application})
		WHERE ($parent_id IS NULL AND NOT (c)-[:HAS_PARENT]->(:Category))
		   OR (c)-[:HAS_PARENT]->(:Category {id: $parent_id})
		OPTIONAL MATCH (c)<-[:HAS_PARENT]-(child:Category)
		WITH c, count(child) > 0 AS has_child
		RETURN {
			id: c.id, application: c.application, parent_id: $parent_id,
			has_child: has_child, title: %s
		} AS category
		ORDER BY c.id`, primaryNomenFragment("c", "HAS_TITLE"))

	c.Applications["exists"] = `MATCH (a:Application {id: $id}) RETURN a.id AS id`

	c.ApiKeys["create"] = `
		CREATE (k:ApiKey {id: $id, name: $name, email: $email, api_key_hash: $hash, is_active: true, created_at: datetime($created_at)})
		RETURN k.id AS id`
	c.ApiKeys["create_with_binding"] = `
		MATCH (a:Application {id: $application_id})
		CREATE (k:ApiKey {id: $id, name: $name, email: $email, api_key_hash: $hash, is_active: true, created_at: datetime($created_at)})-[:BOUND_TO]->(a)
		RETURN k.id AS id`
	c.ApiKeys["validate"] = `
		MATCH (k:ApiKey {api_key_hash: $hash, is_active: true})
		OPTIONAL MATCH (k)-[:BOUND_TO]->(a:Application)
		RETURN k.id AS id, a.id AS bound_application_id`
	c.ApiKeys["revoke"] = `
		MATCH (k:ApiKey {id: $id}) SET k.is_active = false RETURN k.id AS id`
	c.ApiKeys["rotate"] = `
		MATCH (k:ApiKey {id: $id}) SET k.api_key_hash = $hash, k.is_active = true RETURN k.id AS id`
	c.ApiKeys["list"] = `
		MATCH (k:ApiKey)
		OPTIONAL MATCH (k)-[:BOUND_TO]->(a:Application)
		RETURN k.id AS id, k.name AS name, k.email AS email, k.is_active AS is_active,
			k.created_at AS created_at, a.id AS bound_application_id
		ORDER BY k.created_at DESC`

	c.AI["find_or_create"] = `MERGE (ai:AI {id: $id}) RETURN ai.id AS id`

	return c
}

// AttachTargetQuery fills in the COMMENTARY_OF/TRANSLATION_OF edge label,
// since Cypher relationship types cannot be parameterized.
func AttachTargetQuery(relationship string) string {
	return fmt.Sprintf(`
		MATCH (e:Expression {id: $id})
		MATCH (target {id: $target_id})
		CREATE (e)-[:%s]->(target)`, relationship)
}
