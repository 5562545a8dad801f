// Package category holds the thirteen semantic extractors. Each is a
// pipeline.Table instance: an ordered strategy list, a validator, and a
// dedup policy over one item type from pkg/types.
//
// Ambiguous phrasing is resolved conservatively with a fixed precedence:
// identity > job > goal > skill > preference. The lower-precedence
// category rejects the shared phrasing — skills reject bare identity
// statements, jobs reject goal-tense markers, and so on — so at most one
// bucket claims a borderline sentence, and silence beats a wrong answer.
package category
