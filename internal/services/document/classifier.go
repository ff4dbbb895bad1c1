package document

// Classify decides which known document type the transcript belongs
// to. A type is selected only when at least two of its patterns match;
// the scan stops at the first type reaching the threshold. The second
// return is false when no type qualifies, in which case the caller
// must treat the document as unclassified rather than guess.
func (s *service) Classify(rawText string) (string, bool) {
	if rawText == "" {
		return "", false
	}

	for _, d := range detectors {
		hits := 0
		for _, p := range d.patterns {
			if p.MatchString(rawText) {
				hits++
				if hits >= classifierThreshold {
					return d.docType, true
				}
			}
		}
	}
	return "", false
}
