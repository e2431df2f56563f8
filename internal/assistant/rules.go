package assistant

import "strings"

// knowledge holds the canned answers for one language.
type knowledge struct {
	Greeting  string
	Help      string
	Emergency string
	Prayer    string
	Donation  string
}

var knowledgeBase = map[string]knowledge{
	LangHausa: {
		Greeting:  "Sannu! Ni TruNORTH AI ne. Ina taimaka muku da kowanne abu.",
		Help:      "Zan iya taimaka muku da: \n• Bayani game da addini\n• Magani da lafiya\n• Makarantu da ilimi\n• Alƙawari da ayyuka\n• Kasuwanci da aiki\n• Komai da kake buƙata!",
		Emergency: "Idan kana da gaggawa, kana iya buɗewayar shafin Emergency don tuntuɓar taimako.",
		Prayer:    "Lokacin salla ya bambanta bisa ga watan. Zaka iya duba shafin Religious don lokutan salla.",
		Donation:  "Idan kana son ba da azumi ko sadaka, kana iya amfani da shafin Donations.",
	},
	LangEnglish: {
		Greeting:  "Hello! I am TruNORTH AI. I am here to help you with anything.",
		Help:      "I can help you with:\n• Religious guidance\n• Health and medical info\n• Education and learning\n• Community events\n• Business and jobs\n• Anything else you need!",
		Emergency: "If you have an emergency, you can open the Emergency page to contact help.",
		Prayer:    "Prayer times vary by month. You can check the Religious page for prayer times.",
		Donation:  "If you want to give Zakat or charity, you can use the Donations page.",
	},
}

// rule maps trigger keywords to a reply. Rules are evaluated in order and the
// first match wins.
type rule struct {
	keywords []string
	reply    func(kb knowledge, lang string) string
}

var rules = []rule{
	{
		keywords: []string{"sannu", "hello", "hi", "hey"},
		reply: func(kb knowledge, _ string) string {
			return kb.Greeting + "\n\n" + kb.Help
		},
	},
	{
		keywords: []string{"emergency", "gaggawa"},
		reply: func(kb knowledge, lang string) string {
			if lang == LangHausa {
				return kb.Emergency + "\n\nKira: 112"
			}
			return kb.Emergency + "\n\nCall: 112"
		},
	},
	{
		keywords: []string{"prayer", "salla"},
		reply: func(kb knowledge, _ string) string {
			return kb.Prayer
		},
	},
	{
		keywords: []string{"donation", "sadaka"},
		reply: func(kb knowledge, _ string) string {
			return kb.Donation
		},
	},
	{
		keywords: []string{"doctor", "likita"},
		reply: func(_ knowledge, lang string) string {
			if lang == LangHausa {
				return "Idan gaggawa ce, kira 112. Ko kuma duba shafin Emergency."
			}
			return "If it's an emergency, call 112. Or check the Emergency page."
		},
	},
}

// Reply runs the message through the rule table and returns the first
// matching answer, falling back to the generic help reply.
func Reply(message, lang string) string {
	if _, ok := knowledgeBase[lang]; !ok {
		lang = LangEnglish
	}
	kb := knowledgeBase[lang]
	lower := strings.ToLower(message)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply(kb, lang)
			}
		}
	}

	if lang == LangHausa {
		return "Na gode. Zan iya taimaka da: " + kb.Help
	}
	return "Thanks! I can help with: " + kb.Help
}
