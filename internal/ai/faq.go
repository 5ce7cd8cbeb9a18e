package ai

// FAQEntry is one curated question/answer pair, served without calling the
// model so it works even when no API key is configured.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	CGIRef   string `json:"cgi_ref"`
}

// FAQ returns the curated LMNP question list.
func FAQ() []FAQEntry {
	return []FAQEntry{
		{
			Question: "Quelle est la différence entre le Micro-BIC et le régime réel ?",
			Answer: "Le Micro-BIC applique un abattement forfaitaire de 50 % sur vos recettes brutes. " +
				"Le régime réel vous permet de déduire vos charges réelles et d'amortir votre bien, " +
				"ce qui est souvent plus avantageux si vos charges dépassent 50 % de vos recettes.",
			CGIRef: "art. 50-0 CGI (Micro-BIC), art. 39 CGI (Réel)",
		},
		{
			Question: "Puis-je amortir le terrain de mon bien immobilier ?",
			Answer: "Non. Le terrain n'est jamais amortissable, même en LMNP réel. " +
				"Seule la valeur du bâti, du mobilier et des frais d'acquisition est amortissable.",
			CGIRef: "art. 39 C CGI",
		},
		{
			Question: "Comment sont gérés les amortissements excédentaires ?",
			Answer: "Si votre amortissement dépasse votre résultat avant amortissement, l'excédent " +
				"n'est pas perdu : il est reporté sans limitation de durée sur les exercices suivants.",
			CGIRef: "art. 39 C CGI",
		},
		{
			Question: "Les intérêts d'emprunt sont-ils déductibles en LMNP réel ?",
			Answer: "Oui, les intérêts d'emprunt liés à l'acquisition du bien meublé sont " +
				"entièrement déductibles des revenus locatifs en régime réel.",
			CGIRef: "art. 39-1-3° CGI",
		},
		{
			Question: "Quelle est la date limite de dépôt de la liasse fiscale LMNP 2026 ?",
			Answer: "Pour les résidents fiscaux français, la date limite est généralement le 15 mai 2026 " +
				"(télédéclaration sur impots.gouv.fr). Vérifiez les dates officielles sur impots.gouv.fr.",
			CGIRef: "art. 175 CGI",
		},
	}
}
