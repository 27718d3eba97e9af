package scoring

import "math"

// ContentSimilarity is the TF-IDF weighted cosine similarity of two cleaned
// token sequences, as a percentage. IDF is smoothed over the two-document
// corpus: idf(t) = ln((1+n)/(1+df(t))) + 1.
//
// An empty sequence on either side returns a DegenerateSimilarityError; the
// caller treats that as 0.
func ContentSimilarity(resumeTokens, jobTokens []string) (float64, error) {
	if len(resumeTokens) == 0 || len(jobTokens) == 0 {
		return 0, &DegenerateSimilarityError{ResumeTokens: len(resumeTokens), JobTokens: len(jobTokens)}
	}

	resumeTF := termFrequencies(resumeTokens)
	jobTF := termFrequencies(jobTokens)

	// Vocabulary in first-appearance order keeps float summation stable
	vocab := make([]string, 0, len(resumeTF)+len(jobTF))
	seen := make(map[string]bool)
	for _, tokens := range [][]string{resumeTokens, jobTokens} {
		for _, t := range tokens {
			if !seen[t] {
				seen[t] = true
				vocab = append(vocab, t)
			}
		}
	}

	const docs = 2.0
	var dot, normResume, normJob float64
	for _, term := range vocab {
		df := 0.0
		if resumeTF[term] > 0 {
			df++
		}
		if jobTF[term] > 0 {
			df++
		}
		idf := math.Log((1+docs)/(1+df)) + 1

		r := float64(resumeTF[term]) * idf
		j := float64(jobTF[term]) * idf
		dot += r * j
		normResume += r * r
		normJob += j * j
	}

	if normResume == 0 || normJob == 0 {
		return 0, &DegenerateSimilarityError{ResumeTokens: len(resumeTokens), JobTokens: len(jobTokens)}
	}
	cosine := dot / (math.Sqrt(normResume) * math.Sqrt(normJob))
	return Round(Clamp(cosine*100), 1), nil
}

func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
