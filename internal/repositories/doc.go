// package repositories provides the persistence layer behind the movie stores.
//
// [SlotRepository] backs [models.SlotStore] with the SQLite slots table; [MemorySlotStore] is the
// volatile equivalent used by tests and by --memory runs. [MovieCacheRepository] caches catalog details.
package repositories
