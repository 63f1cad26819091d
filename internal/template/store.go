// Package template holds the single mutable contract template and the
// placeholder substitution over it.
package template

import "sync"

// Default is the canonical contract template. Placeholder tokens {name},
// {age}, {course}, {format}, {date} and {number} are the only substitutable
// tokens; any other braced text is literal.
const Default = `
SHARTNOMA № {number}

Toshkent sh.                                                              {date}

"Zamonaviy Ta'lim" MCHJ (keyingi o'rinlarda "O'quv Markazi" deb yuritiladi) bir tomondan va {name} (keyingi o'rinlarda "O'quvchi" deb yuritiladi) ikkinchi tomondan, ushbu shartnomani quyidagilar haqida tuzdilar:

1. SHARTNOMA PREDMETI
1.1. O'quv Markazi O'quvchini "{course}" kursi bo'yicha {format} formatda o'qitish majburiyatini oladi.
1.2. O'quvchi belgilangan tartibda darslarda qatnashish va to'lovlarni o'z vaqtida amalga oshirish majburiyatini oladi.

2. O'QUV JARAYONI VA SHARTLARI
2.1. O'quvchining yoshi: {age} yosh.
2.2. Darslar {format} tarzda, maxsus platforma orqali olib boriladi.
2.3. O'quvchi darslarda faol qatnashishi shart.
2.4. Dars yozuvlari va materiallari faqat shaxsiy foydalanish uchun beriladi. Ularni uchinchi shaxslarga tarqatish qat'iyan man etiladi.

3. TOMONLARNING HUQUQ VA MAJBURIYATLARI
3.1. O'quvchi darslarga o'z vaqtida qo'shilishi, uy vazifalarini bajarishi shart.
3.2. Qoidabuzarlik holatlari kuzatilganda, O'quvchiga ogohlantirish beriladi. Qoidabuzarlik davom etsa, O'quv Markazi shartnomani bekor qilish huquqiga ega.

4. TO'LOV TARTIBI
4.1. To'lov har oyning belgilangan sanasigacha amalga oshirilishi lozim.

5. YAKUNIY QOIDALAR
5.1. Ushbu shartnoma O'quvchi tomonidan tasdiqlangandan so'ng kuchga kiradi.
`

// Store holds the process-wide template text. There is no partial mutation,
// only wholesale replacement, so a single RWMutex is sufficient.
type Store struct {
	mu   sync.RWMutex
	text string
}

// NewStore creates a store initialized with the built-in default template.
func NewStore() *Store {
	return &Store{text: Default}
}

// Get returns the current template text.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Set replaces the template text wholesale.
func (s *Store) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}
