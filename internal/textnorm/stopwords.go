package textnorm

// stopwords is the English stopword list applied to the cleaned token view.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
		"and", "any", "are", "aren", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "cannot", "could",
		"couldn", "did", "didn", "do", "does", "doesn", "doing", "don", "down",
		"during", "each", "etc", "few", "for", "from", "further", "had", "hadn",
		"has", "hasn", "have", "haven", "having", "he", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "however", "i", "if", "in",
		"into", "is", "isn", "it", "its", "itself", "just", "let", "like", "may",
		"me", "might", "more", "most", "must", "mustn", "my", "myself", "no", "nor",
		"not", "now", "of", "off", "on", "once", "only", "or", "other", "ought",
		"our", "ours", "ourselves", "out", "over", "own", "per", "same", "shall",
		"shan", "she", "should", "shouldn", "so", "some", "such", "than", "that",
		"the", "their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "thus", "to", "too", "under", "until",
		"up", "upon", "us", "very", "via", "was", "wasn", "we", "were", "weren",
		"what", "when", "where", "which", "while", "who", "whom", "whose", "why",
		"will", "with", "within", "without", "won", "would", "wouldn", "yet", "you",
		"your", "yours", "yourself", "yourselves",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether a lowercase token is an English stopword.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
