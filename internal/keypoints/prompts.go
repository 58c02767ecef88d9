package keypoints

import (
	"fmt"

	"github.com/spacesedan/reviewsense/internal/language"
)

// Prompt is the instruction pair sent to a provider. Stages that do not take a
// system prompt send User alone; User is complete on its own.
type Prompt struct {
	System string
	User   string
}

const indonesianSystemPrompt = `Anda adalah ahli analisis review produk yang sangat memahami nuansa bahasa Indonesia, termasuk ekspresi sehari-hari, bentuk posesif "-nya", dan makna tersirat dari review singkat. Hanya ekstrak informasi yang benar-benar ada atau tersirat dalam review. Jangan pernah menulis bahwa sesuatu "tidak disebutkan", "tidak spesifik", atau "tidak ada informasi". Jangan gunakan pengantar generik seperti "Produk ini memiliki..." atau "Pengguna mengatakan...". Jangan gunakan header. Langsung tulis poin dengan bullet (•).`

const indonesianUserPrompt = `Analisis review produk berikut dengan sensitivitas tinggi terhadap nuansa bahasa Indonesia. Pahami konteks, ekspresi sehari-hari, pola kalimat, dan makna tersirat.

Teks review:
%s

Instruksi:
1. Pahami nuansa bahasa Indonesia:
   - Perhatikan ekspresi seperti "keren", "enak dimakan", "mantap", "banget", "produknya", "barangnya".
   - Bentuk posesif "-nya": "produknya keren" berarti tampilan produk menarik, "rasanya enak" berarti rasa produk enak.
   - "keren" biasanya tentang tampilan atau desain, "enak" tentang rasa, "bagus" tentang kualitas umum, "mantap" tentang kepuasan umum.
   - Review singkat tetap mengandung informasi penting, jangan diabaikan.
2. Ekstrak poin penting yang spesifik: kelebihan atau kekurangan utama, fitur, kualitas, harga, kesan keseluruhan, serta rekomendasi atau peringatan bila tersirat.
3. Format output:
   - Berikan 3-5 poin paling relevan (2-3 poin untuk review singkat).
   - Maksimal 2 baris per poin.
   - Gunakan bahasa Indonesia yang natural.
   - Hindari frasa generik seperti "Produk ini memiliki...", "Pengguna mengatakan...", atau "Review ini menunjukkan...".
   - Langsung ke poin: "Rasa enak dan tampilan menarik", bukan "Produk ini memiliki rasa yang enak dan tampilan yang menarik".
4. Jangan pernah:
   - menyebutkan hal yang tidak ada dalam review;
   - menulis "tidak disebutkan", "tidak ada informasi", "tidak spesifik", atau "belum disebutkan";
   - memakai header seperti "Kekurangan atau kelebihan utama:", "Fitur dan kualitas:", "Kesan keseluruhan pengguna:", atau "Rekomendasi atau peringatan:".

Contoh untuk review "produknya keren dan enak dimakan":
• Tampilan produk menarik
• Rasa produk enak dan layak dikonsumsi
• Pengguna puas dengan aspek visual dan rasa

Jawab langsung dengan poin-poin penting, tanpa header, tanpa pengantar. Awali setiap poin dengan bullet (•).`

const englishSystemPrompt = `You are a helpful assistant that extracts key points from product reviews. Be concise and relevant. Only report what the review actually says or clearly implies, never state that information is missing, and answer with bare bullet points (•) without headers or preamble.`

const englishUserPrompt = `Analyze the following product review and extract the key points concisely.

Focus on:
- Main concerns or praises
- Specific features mentioned
- Overall impression
- Any recommendations or warnings

Review text:
%s

Rules:
- Give 3-5 key points (2-3 for a short review), at most 2 lines per point.
- Go straight to the point. Avoid lead-ins such as "This product has..." or "The user says...".
- Never say that something is not mentioned, not specified, or missing.
- No headers, no introduction. Start every point with a bullet (•).`

// BuildPrompt returns the instruction pair for lang with text embedded.
func BuildPrompt(lang language.Language, text string) Prompt {
	if lang == language.Indonesian {
		return Prompt{
			System: indonesianSystemPrompt,
			User:   fmt.Sprintf(indonesianUserPrompt, text),
		}
	}
	return Prompt{
		System: englishSystemPrompt,
		User:   fmt.Sprintf(englishUserPrompt, text),
	}
}
