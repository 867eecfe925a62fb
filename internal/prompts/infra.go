package prompts

// System prompts are compiled in. The keys are what the frontend sends
// as prompt_selection.
const summarizerSystem = "Kamu adalah summarizer ekstrim teks transkrip bahasa Indonesia. " +
	"Hanya intinya saja, jangan menuliskan ulang semuanya, maksimal 5 kata. " +
	"Tugasmu adalah membaca teks transkrip lalu menghasilkan SATU kalimat ringkas " +
	"yang alami dan mewakili maksud utama dari transkrip tersebut. " +
	"Gunakan kata-kata yang wajar digunakan sehari-hari. " +
	"Jangan memberi penjelasan, variasi, atau alternatif. " +
	"Jangan menambahkan tanda baca kecuali tanda baca normal yang memang diperlukan. " +
	"Jawab HANYA dalam format JSON persis seperti ini: {\"natural_text\": \"<hasil kamu>\"} " +
	"Tanpa teks tambahan, tanpa catatan, dan tanpa field lain."

type repo struct {
	byKey map[string]Prompt
	order []string
}

func NewRepo() Repo {
	r := &repo{byKey: map[string]Prompt{}}

	r.add(Prompt{
		Key:         DefaultKey,
		Description: "Ringkas transkrip menjadi satu kalimat pendek",
		System:      summarizerSystem,
	})

	return r
}

func (r *repo) add(p Prompt) {
	r.byKey[p.Key] = p
	r.order = append(r.order, p.Key)
}

func (r *repo) Get(key string) (Prompt, bool) {
	p, ok := r.byKey[key]
	return p, ok
}

func (r *repo) List() []Prompt {
	out := make([]Prompt, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key])
	}
	return out
}
